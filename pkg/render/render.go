// Package render draws the leaderboard screen state.
// Every renderer is a pure function of leaderboard.State.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

// Renderer converts screen state to formatted output.
type Renderer interface {
	Render(s *leaderboard.State) string
}

var printer = message.NewPrinter(language.English)

// Points formats a rating with thousands separators, e.g. "12,480".
func Points(rating int) string {
	return printer.Sprintf("%d", rating)
}

// PageLabel is the "page / total" indicator between the pagination buttons.
func PageLabel(s *leaderboard.State) string {
	return printer.Sprintf("%d / %d", s.Page, s.TotalPages)
}

// SafeText strips escape sequences and other non-printing runes from text that
// came from outside, so a username cannot move the cursor or restyle the screen.
func SafeText(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if !unicode.IsPrint(r) && r != ' ' {
			return -1
		}
		return r
	}, s)
}
