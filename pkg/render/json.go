package render

import (
	"encoding/json"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

// JSON renders the screen state as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonOutput struct {
	Version    string              `json:"version"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Query      string              `json:"query"`
	Podium     []jsonStanding      `json:"podium,omitempty"`
	Entries    []leaderboard.Entry `json:"entries"`
	HasPrev    bool                `json:"has_prev"`
	HasNext    bool                `json:"has_next"`
	Error      string              `json:"error,omitempty"`
}

type jsonStanding struct {
	Place int               `json:"place"`
	Medal string            `json:"medal"`
	Entry leaderboard.Entry `json:"entry"`
}

// Render formats the state as indented JSON.
func (j *JSON) Render(s *leaderboard.State) string {
	out := jsonOutput{
		Version:    "1.0",
		Page:       s.Page,
		TotalPages: s.TotalPages,
		Query:      s.Query,
		Entries:    s.Entries,
		HasPrev:    s.HasPrev(),
		HasNext:    s.HasNext(),
		Error:      s.Err,
	}
	if out.Entries == nil {
		out.Entries = []leaderboard.Entry{}
	}
	for _, st := range s.Podium() {
		out.Podium = append(out.Podium, jsonStanding{
			Place: st.Place,
			Medal: string(leaderboard.Medal(st.Place)),
			Entry: st.Entry,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
