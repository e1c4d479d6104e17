package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

const (
	podiumColumnWidth = 18
	rankColumnWidth   = 7
	pointsColumnWidth = 10
	minWidth          = 40
)

// Terminal renders the screen as styled terminal output via lipgloss.
type Terminal struct {
	theme *Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme *Theme, width int) *Terminal {
	if theme == nil {
		theme = DefaultTheme()
	}
	if width < minWidth {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Width returns the layout width.
func (t *Terminal) Width() int { return t.width }

// SetWidth updates the layout width after a terminal resize.
func (t *Terminal) SetWidth(width int) {
	if width >= minWidth {
		t.width = width
	}
}

// Render draws the whole screen as a static snapshot.
func (t *Terminal) Render(s *leaderboard.State) string {
	sections := []string{t.Header()}
	if p := t.Podium(s); p != "" {
		sections = append(sections, p)
	}
	if s.Query != "" {
		sections = append(sections, t.theme.Muted.Render("Search: ")+t.theme.Text.Render(SafeText(s.Query)))
	}
	sections = append(sections, t.TableHeader())
	if st := t.Status(s, ""); st != "" {
		sections = append(sections, st)
	}
	if rows := t.Rows(s.Entries); rows != "" {
		sections = append(sections, rows)
	}
	sections = append(sections, t.Pagination(s))
	return strings.Join(sections, "\n") + "\n"
}

// Header draws the brand tag and the page title.
func (t *Terminal) Header() string {
	brand := t.theme.BrandTag.Render(t.theme.Brand)
	title := t.theme.Title.Render("LEADERBOARD")
	gap := t.width - lipgloss.Width(brand) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}
	return brand + strings.Repeat(" ", gap/2) + title
}

// Podium draws the top three as second, first and third place columns.
// It returns "" when the podium is hidden.
func (t *Terminal) Podium(s *leaderboard.State) string {
	standings := s.Podium()
	if standings == nil {
		return ""
	}
	cols := make([]string, 0, len(standings))
	for _, st := range standings {
		cols = append(cols, t.podiumColumn(st))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
	return lipgloss.PlaceHorizontal(t.width, lipgloss.Center, row)
}

func (t *Terminal) podiumColumn(st leaderboard.Standing) string {
	inner := podiumColumnWidth - 4 // border + padding
	name := runewidth.Truncate(SafeText(st.Entry.Username), inner, "…")

	lines := []string{
		t.theme.Text.Render(t.theme.Avatar(st.Place)),
		t.theme.Badge.Render(fmt.Sprintf("#%d", st.Place)),
		t.theme.Bold.Render(name),
		t.theme.Accent.Render(Points(st.Entry.Rating) + " pts"),
	}
	box := t.theme.podium.
		Width(podiumColumnWidth - 2).
		BorderForeground(t.theme.BorderColor(st.Place))
	style := lipgloss.NewStyle().Margin(0, 1)
	if st.Winner() {
		// Raised above the side columns.
		style = style.MarginBottom(2)
	}
	return style.Render(box.Render(strings.Join(lines, "\n")))
}

func (t *Terminal) nameWidth() int {
	w := t.width - rankColumnWidth - pointsColumnWidth - 2
	if w < 8 {
		w = 8
	}
	return w
}

// TableHeader draws the RANK / PLAYER / POINTS header.
func (t *Terminal) TableHeader() string {
	line := runewidth.FillRight("RANK", rankColumnWidth) + " " +
		runewidth.FillRight("PLAYER", t.nameWidth()) + " " +
		runewidth.FillLeft("POINTS", pointsColumnWidth)
	return t.theme.Header.Render(line)
}

// Rows draws every entry in rank order.
func (t *Terminal) Rows(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, t.Row(e))
	}
	return strings.Join(lines, "\n")
}

// Row draws a single entry.
func (t *Terminal) Row(e leaderboard.Entry) string {
	nw := t.nameWidth()
	rank := t.theme.Bold.Render(runewidth.FillRight(fmt.Sprintf("#%d", e.Rank), rankColumnWidth))
	name := t.theme.Row.Render(runewidth.FillRight(runewidth.Truncate(SafeText(e.Username), nw, "…"), nw))
	points := t.theme.Accent.Render(runewidth.FillLeft(Points(e.Rating), pointsColumnWidth))
	return rank + " " + name + " " + points
}

// Status draws the loading indicator and error line.
// spinner is the animated frame from the interactive board; "" uses a static marker.
func (t *Terminal) Status(s *leaderboard.State, spinner string) string {
	var parts []string
	if s.Loading {
		if spinner == "" {
			spinner = "…"
		}
		parts = append(parts, t.theme.Accent.Render(spinner)+t.theme.Muted.Render(" loading"))
	}
	if s.Err != "" {
		parts = append(parts, t.theme.Error.Render("Error: "+s.Err))
	}
	return strings.Join(parts, "\n")
}

// Pagination draws Previous / page indicator / Next, muting disabled buttons.
func (t *Terminal) Pagination(s *leaderboard.State) string {
	prev := t.theme.Button
	if !s.HasPrev() {
		prev = t.theme.Disabled
	}
	next := t.theme.Button
	if !s.HasNext() {
		next = t.theme.Disabled
	}
	left := prev.Render("Previous")
	right := next.Render("Next")
	info := t.theme.Bold.Render(PageLabel(s))

	gap := t.width - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(info)
	if gap < 2 {
		gap = 2
	}
	spacer := lipgloss.NewStyle().Width(gap / 2).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Center, left, spacer, info, spacer, right)
}
