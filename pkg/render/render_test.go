package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

func podiumState() *leaderboard.State {
	s := leaderboard.NewState()
	s.Apply(&leaderboard.Page{
		Entries: []leaderboard.Entry{
			{Username: "alpha", Rating: 100, Rank: 1},
			{Username: "bravo", Rating: 90, Rank: 2},
			{Username: "charlie", Rating: 80, Rank: 3},
		},
		Total: 3,
	})
	return &s
}

// stripANSI removes CSI escape sequences so tests can inspect visible text.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < '@' || s[j] > '~') {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// column returns the display column of name within the first line containing it.
func column(t *testing.T, out, name string) int {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if idx := strings.Index(line, name); idx >= 0 {
			return runewidth.StringWidth(line[:idx])
		}
	}
	t.Fatalf("%q not found in:\n%s", name, out)
	return -1
}

func TestTerminal_Podium_OrdersSecondFirstThird(t *testing.T) {
	r := NewTerminal(MonoTheme(), 100)
	out := stripANSI(r.Podium(podiumState()))

	second := column(t, out, "bravo")
	first := column(t, out, "alpha")
	third := column(t, out, "charlie")
	assert.Less(t, second, first, "second place is left of the winner")
	assert.Less(t, first, third, "third place is right of the winner")
	assert.Contains(t, out, "100 pts")
}

func TestTerminal_Podium_HiddenOffFirstPageOrDuringSearch(t *testing.T) {
	r := NewTerminal(MonoTheme(), 100)

	s := podiumState()
	s.Page = 2
	assert.Empty(t, r.Podium(s))

	s = podiumState()
	s.Query = "al"
	assert.Empty(t, r.Podium(s))
}

func TestTerminal_Render_ListRepeatsPodiumEntries(t *testing.T) {
	r := NewTerminal(MonoTheme(), 100)
	out := stripANSI(r.Render(podiumState()))

	assert.Contains(t, out, "LEADERBOARD")
	assert.Contains(t, out, "RANK")
	assert.Equal(t, 2, strings.Count(out, "charlie"), "podium plus list row")

	rows := stripANSI(r.Rows(podiumState().Entries))
	lines := strings.Split(rows, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "#1")
	assert.Contains(t, lines[0], "alpha")
	assert.Contains(t, lines[2], "#3")
}

func TestTerminal_Status_ShowsLoadingAndErrorWithStaleRows(t *testing.T) {
	r := NewTerminal(MonoTheme(), 80)
	s := podiumState()
	s.Loading = true
	s.Fail(errors.New("HTTP error! status: 500"))

	out := stripANSI(r.Render(s))
	assert.Contains(t, out, "loading")
	assert.Contains(t, out, "Error: HTTP error! status: 500")
	assert.Contains(t, out, "alpha", "stale rows stay visible")
}

func TestTerminal_Pagination_ShowsPageIndicator(t *testing.T) {
	r := NewTerminal(MonoTheme(), 80)
	s := leaderboard.NewState()
	s.Apply(&leaderboard.Page{Total: 0})

	out := stripANSI(r.Pagination(&s))
	assert.Contains(t, out, "Previous")
	assert.Contains(t, out, "1 / 1")
	assert.Contains(t, out, "Next")
}

func TestTerminal_Row_TruncatesWideNames(t *testing.T) {
	r := NewTerminal(MonoTheme(), 40)
	row := stripANSI(r.Row(leaderboard.Entry{Username: strings.Repeat("名", 40), Rating: 5, Rank: 9}))
	assert.LessOrEqual(t, lipgloss.Width(row), 40)
	assert.Contains(t, row, "…")
}

func TestTheme_BorderColor(t *testing.T) {
	th := DefaultTheme()
	p := DefaultPalette()

	assert.Equal(t, lipgloss.Color(p.Gold), th.BorderColor(1))
	assert.Equal(t, lipgloss.Color(p.Silver), th.BorderColor(2))
	assert.Equal(t, lipgloss.Color(p.Bronze), th.BorderColor(3))
	assert.Equal(t, lipgloss.Color(p.Primary), th.BorderColor(4))
}

func TestPalette_Merge(t *testing.T) {
	p := Palette{Gold: "#AAAAAA"}.Merge(DefaultPalette())
	assert.Equal(t, "#AAAAAA", p.Gold)
	assert.Equal(t, DefaultPalette().Silver, p.Silver)
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, "mono", ThemeByName("mono", "ACME", Palette{}, nil).Name)
	th := ThemeByName("anything", "ACME", Palette{}, map[int]string{1: "*"})
	assert.Equal(t, "neon", th.Name)
	assert.Equal(t, "ACME", th.Brand)
	assert.Equal(t, "*", th.Avatar(1))
	assert.NotEmpty(t, th.Avatar(2))
}

func TestPoints(t *testing.T) {
	assert.Equal(t, "80", Points(80))
	assert.Equal(t, "12,480", Points(12480))
	assert.Equal(t, "1,234,567", Points(1234567))
}

func TestPlain_Render(t *testing.T) {
	out := NewPlain("").Render(podiumState())

	assert.Contains(t, out, "MATIKS LEADERBOARD")
	assert.Contains(t, out, "PODIUM: 2. bravo (90 pts) | 1. alpha (100 pts) | 3. charlie (80 pts)")
	assert.Contains(t, out, "PAGE 1 / 1")
	assert.NotContains(t, out, "\033[")
}

func TestJSON_Render(t *testing.T) {
	s := podiumState()
	s.Fail(errors.New("boom"))

	var got struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
		Podium     []struct {
			Place int               `json:"place"`
			Medal string            `json:"medal"`
			Entry leaderboard.Entry `json:"entry"`
		} `json:"podium"`
		Entries []leaderboard.Entry `json:"entries"`
		HasNext bool                `json:"has_next"`
		Error   string              `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(NewJSON().Render(s)), &got))

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	require.Len(t, got.Podium, 3)
	assert.Equal(t, "bravo", got.Podium[0].Entry.Username)
	assert.Equal(t, "silver", got.Podium[0].Medal)
	assert.Equal(t, "gold", got.Podium[1].Medal)
	assert.Len(t, got.Entries, 3)
	assert.False(t, got.HasNext)
	assert.Equal(t, "boom", got.Error)
}

func TestJSON_Render_EmptyEntriesIsArray(t *testing.T) {
	s := leaderboard.NewState()
	out := NewJSON().Render(&s)
	assert.Contains(t, out, `"entries": []`)
	assert.NotContains(t, out, `"podium"`)
}

func TestSafeText_DropsEscapesAndControlRunes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "alpha", want: "alpha"},
		{in: "\x1b[31mred\x1b[0m", want: "red"},
		{in: "a\x1b]0;title\x07b", want: "ab"},
		{in: "line\nbreak\r", want: "linebreak"},
		{in: "tab\there", want: "tab here"},
		{in: "名前 ok", want: "名前 ok"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeText(tt.in), "in=%q", tt.in)
	}
}

func TestRenderers_SanitizeUsernames(t *testing.T) {
	s := podiumState()
	s.Entries[0].Username = "evil\x1b[2J\nname"

	row := NewTerminal(MonoTheme(), 80).Row(s.Entries[0])
	assert.NotContains(t, row, "\x1b[2J")
	assert.Contains(t, stripANSI(row), "evilname")

	plain := NewPlain("").Render(s)
	assert.NotContains(t, plain, "\x1b")
	assert.Contains(t, plain, "1. evilname (100 pts)")
}
