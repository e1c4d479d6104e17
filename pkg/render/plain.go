package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

// Plain renders the screen as ANSI-free text for pipes and log files.
// Fixed column layout, one entry per line.
type Plain struct {
	brand string
}

// NewPlain creates a plain-text renderer.
func NewPlain(brand string) *Plain {
	if brand == "" {
		brand = "MATIKS"
	}
	return &Plain{brand: brand}
}

// Render formats the state as plain text.
func (p *Plain) Render(s *leaderboard.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s LEADERBOARD\n", p.brand)

	if podium := s.Podium(); podium != nil {
		cells := make([]string, 0, len(podium))
		for _, st := range podium {
			cells = append(cells, fmt.Sprintf("%d. %s (%s pts)", st.Place, SafeText(st.Entry.Username), Points(st.Entry.Rating)))
		}
		sb.WriteString("PODIUM: " + strings.Join(cells, " | ") + "\n")
	}
	if s.Query != "" {
		fmt.Fprintf(&sb, "SEARCH: %s\n", SafeText(s.Query))
	}
	if s.Loading {
		sb.WriteString("LOADING\n")
	}
	if s.Err != "" {
		fmt.Fprintf(&sb, "Error: %s\n", s.Err)
	}

	fmt.Fprintf(&sb, "%-6s %-24s %10s\n", "RANK", "PLAYER", "POINTS")
	for _, e := range s.Entries {
		fmt.Fprintf(&sb, "%-6s %-24s %10s\n", fmt.Sprintf("#%d", e.Rank), SafeText(e.Username), Points(e.Rating))
	}
	fmt.Fprintf(&sb, "PAGE %s\n", PageLabel(s))
	return sb.String()
}
