// Package leaderboard defines the ranked-entry data model and the screen state
// that the renderers and the interactive board share.
// Types here are pure data plus state transitions; no I/O happens in this package.
package leaderboard

import "encoding/json"

// PageSize is the fixed number of entries requested per page.
const PageSize = 50

// Entry is a single ranked player as reported by the backend.
type Entry struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Rank     int    `json:"rank"` // 1-based, assigned by the backend
}

// Page is one page of the leaderboard envelope.
type Page struct {
	Entries []Entry `json:"users"`
	Total   int     `json:"total"` // entries across all pages
}

// UnmarshalJSON decodes the {"users": [...], "total": n} envelope.
// Missing users decode to an empty slice, missing total to zero.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Users []Entry `json:"users"`
		Total int     `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Users == nil {
		raw.Users = []Entry{}
	}
	p.Entries = raw.Users
	p.Total = raw.Total
	return nil
}

// TotalPages returns the page count for total entries, never less than 1.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
