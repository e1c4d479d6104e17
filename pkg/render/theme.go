package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

// Palette is the configurable colour set, loaded from .podium.yaml.
type Palette struct {
	Background string `yaml:"background"`
	Primary    string `yaml:"primary"` // accent: brand, points, default podium border
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"` // disabled buttons, placeholders
	Border     string `yaml:"border"`
	Gold       string `yaml:"gold"`
	Silver     string `yaml:"silver"`
	Bronze     string `yaml:"bronze"`
	Error      string `yaml:"error"`
}

// DefaultPalette returns the neon-on-black palette.
func DefaultPalette() Palette {
	return Palette{
		Background: "#000000",
		Primary:    "#39FF14", // Neon green
		Text:       "#FFFFFF",
		Muted:      "#888888",
		Border:     "#7F7F7F",
		Gold:       "#FFD700",
		Silver:     "#C0C0C0",
		Bronze:     "#CD7F32",
		Error:      "#FF5F56",
	}
}

// Merge fills empty fields of p from def.
func (p Palette) Merge(def Palette) Palette {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&p.Background, def.Background)
	fill(&p.Primary, def.Primary)
	fill(&p.Text, def.Text)
	fill(&p.Muted, def.Muted)
	fill(&p.Border, def.Border)
	fill(&p.Gold, def.Gold)
	fill(&p.Silver, def.Silver)
	fill(&p.Bronze, def.Bronze)
	fill(&p.Error, def.Error)
	return p
}

// DefaultAvatars maps podium places to the glyph drawn above the name.
func DefaultAvatars() map[int]string {
	return map[int]string{
		1: "\u265b", // ♛
		2: "\u265c", // ♜
		3: "\u265e", // ♞
	}
}

// Theme holds compiled lipgloss styles.
type Theme struct {
	Name  string
	Brand string // shown left of the title

	Title    lipgloss.Style
	BrandTag lipgloss.Style
	Accent   lipgloss.Style
	Text     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Search   lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Badge    lipgloss.Style

	podium  lipgloss.Style
	medals  map[leaderboard.MedalKind]lipgloss.TerminalColor
	avatars map[int]string
}

// NewTheme compiles a palette into styles.
func NewTheme(name, brand string, p Palette, avatars map[int]string) *Theme {
	p = p.Merge(DefaultPalette())
	primary := lipgloss.Color(p.Primary)
	text := lipgloss.Color(p.Text)
	muted := lipgloss.Color(p.Muted)
	border := lipgloss.Color(p.Border)

	t := &Theme{
		Name:     name,
		Brand:    brand,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(text).Padding(0, 2),
		BrandTag: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Accent:   lipgloss.NewStyle().Foreground(primary).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(text),
		Bold:     lipgloss.NewStyle().Foreground(text).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		Row: lipgloss.NewStyle().Foreground(text),
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 2),
		Disabled: lipgloss.NewStyle().
			Foreground(muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 2),
		Badge: lipgloss.NewStyle().Bold(true).Foreground(text),
		podium: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Align(lipgloss.Center).
			Padding(0, 1),
		medals: map[leaderboard.MedalKind]lipgloss.TerminalColor{
			leaderboard.MedalGold:   lipgloss.Color(p.Gold),
			leaderboard.MedalSilver: lipgloss.Color(p.Silver),
			leaderboard.MedalBronze: lipgloss.Color(p.Bronze),
			leaderboard.MedalNone:   primary,
		},
		avatars: avatars,
	}
	if t.avatars == nil {
		t.avatars = DefaultAvatars()
	}
	return t
}

// DefaultTheme returns the neon theme.
func DefaultTheme() *Theme {
	return NewTheme("neon", "MATIKS", DefaultPalette(), nil)
}

// MonoTheme returns a theme without colours. Borders and layout are kept.
func MonoTheme() *Theme {
	plain := lipgloss.NewStyle()
	noColor := lipgloss.NoColor{}
	return &Theme{
		Name:     "mono",
		Brand:    "MATIKS",
		Title:    plain.Bold(true).Padding(0, 2),
		BrandTag: plain.Bold(true),
		Accent:   plain.Bold(true),
		Text:     plain,
		Bold:     plain.Bold(true),
		Muted:    plain.Faint(true),
		Error:    plain.Bold(true),
		Header:   plain.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true),
		Row:      plain,
		Search:   plain.Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Button:   plain.Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Disabled: plain.Faint(true).Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Badge:    plain.Bold(true),
		podium:   plain.Border(lipgloss.RoundedBorder()).Align(lipgloss.Center).Padding(0, 1),
		medals: map[leaderboard.MedalKind]lipgloss.TerminalColor{
			leaderboard.MedalGold:   noColor,
			leaderboard.MedalSilver: noColor,
			leaderboard.MedalBronze: noColor,
			leaderboard.MedalNone:   noColor,
		},
		avatars: DefaultAvatars(),
	}
}

// ThemeByName returns a named theme, defaulting to the neon theme.
func ThemeByName(name, brand string, p Palette, avatars map[int]string) *Theme {
	var t *Theme
	switch name {
	case "mono":
		t = MonoTheme()
		if avatars != nil {
			t.avatars = avatars
		}
	default:
		t = NewTheme("neon", brand, p, avatars)
	}
	if brand != "" {
		t.Brand = brand
	}
	return t
}

// BorderColor returns the podium border colour for a place:
// gold, silver and bronze for 1-3, the accent colour otherwise.
func (t *Theme) BorderColor(place int) lipgloss.TerminalColor {
	return t.medals[leaderboard.Medal(place)]
}

// Avatar returns the glyph for a podium place.
func (t *Theme) Avatar(place int) string {
	if a, ok := t.avatars[place]; ok && a != "" {
		return a
	}
	return "\u25cf" // ●
}
