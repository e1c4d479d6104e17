// Package board runs the interactive leaderboard screen: a bubbletea program that
// refreshes on a timer, searches as you type and pages through results.
package board

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/podium/pkg/client"
	"github.com/dkoosis/podium/pkg/leaderboard"
	"github.com/dkoosis/podium/pkg/render"
)

// Default timings.
const (
	DefaultRefresh  = 5 * time.Second
	DefaultDebounce = 300 * time.Millisecond
)

const searchLimit = 64

// StaleObserver is notified when an out-of-order response is dropped.
type StaleObserver interface {
	ObserveStale()
}

// Config wires the board to its collaborators.
type Config struct {
	Fetcher  client.Fetcher
	Theme    *render.Theme
	Refresh  time.Duration
	Debounce time.Duration // 0 fetches on every keystroke
	Logger   *slog.Logger
	Stale    StaleObserver

	// Initial binding; zero values mean page 1 and no search.
	Page  int
	Query string
}

// Model is the bubbletea model of the leaderboard screen.
type Model struct {
	ctx   context.Context
	cfg   Config
	state leaderboard.State
	keys  keyMap

	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	renderer *render.Terminal

	// scheduler
	bound      binding
	seq        uint64
	cancel     context.CancelFunc
	inflight   bool
	timerGen   uint64
	debounceID uint64
	tick       func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	ready    bool
	quitting bool
	width    int
	height   int
}

// New builds the screen model. Nothing is fetched until the program starts.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Theme == nil {
		cfg.Theme = render.DefaultTheme()
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = DefaultRefresh
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// The search box holds at most searchLimit runes; the state must agree with it.
	if r := []rune(cfg.Query); len(r) > searchLimit {
		cfg.Query = string(r[:searchLimit])
	}

	state := leaderboard.NewState()
	state.Query = cfg.Query
	if cfg.Page > 1 {
		// The page count is unknown until the first response, which clamps it.
		state.Page = cfg.Page
		state.TotalPages = cfg.Page
	}

	ti := textinput.New()
	ti.Placeholder = "Search player..."
	ti.Prompt = "\u2315 " // ⌕
	ti.CharLimit = searchLimit
	ti.SetValue(cfg.Query)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.Accent

	vp := viewport.New(0, 0)

	return Model{
		ctx:      ctx,
		cfg:      cfg,
		state:    state,
		keys:     defaultKeyMap(),
		search:   ti,
		spinner:  sp,
		viewport: vp,
		help:     help.New(),
		renderer: render.NewTerminal(cfg.Theme, 80),
		tick:     tea.Tick,
	}
}

// State returns a copy of the current view state.
func (m Model) State() leaderboard.State { return m.state }

// Run launches the interactive board and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	program := tea.NewProgram(New(ctx, cfg), opts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		cmd := m.rebind()
		m.syncViewport()
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
		m.search.Width = msg.Width - 8
		m.help.Width = msg.Width
		m.ready = true
		m.syncViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case fetchResultMsg:
		cmd := m.handleResult(msg)
		m.syncViewport()
		return m, cmd
	case refreshTickMsg:
		cmd := m.handleTick(msg)
		m.syncViewport()
		return m, cmd
	case debounceMsg:
		cmd := m.handleDebounce(msg)
		m.syncViewport()
		return m, cmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		if m.search.Value() == "" {
			m.stop()
			return m, tea.Quit
		}
		m.search.SetValue("")
		cmd = m.queryChanged("")
	case key.Matches(msg, m.keys.PrevPage):
		cmd = m.goToPage(m.state.Page - 1)
	case key.Matches(msg, m.keys.NextPage):
		cmd = m.goToPage(m.state.Page + 1)
	case key.Matches(msg, m.keys.FirstPage):
		cmd = m.goToPage(1)
	case key.Matches(msg, m.keys.LastPage):
		cmd = m.goToPage(m.state.TotalPages)
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		cmd = m.refresh()
	default:
		before := m.search.Value()
		var inputCmd tea.Cmd
		m.search, inputCmd = m.search.Update(msg)
		cmd = inputCmd
		if after := m.search.Value(); after != before {
			m.viewport.GotoTop()
			cmd = tea.Batch(inputCmd, m.queryChanged(after))
		}
	}
	m.syncViewport()
	return m, cmd
}

// top and bottom are the fixed sections around the scrolling list.
func (m *Model) top() string {
	sections := []string{m.renderer.Header()}
	if p := m.renderer.Podium(&m.state); p != "" {
		sections = append(sections, p)
	}
	sections = append(sections, m.cfg.Theme.Search.Render(m.search.View()), m.renderer.TableHeader())
	if st := m.renderer.Status(&m.state, m.spinner.View()); st != "" {
		sections = append(sections, st)
	}
	return strings.Join(sections, "\n")
}

func (m *Model) bottom() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderer.Pagination(&m.state), m.help.View(m.keys))
}

// syncViewport sizes the list to the space left by the fixed sections and
// refreshes its content.
func (m *Model) syncViewport() {
	m.viewport.Width = m.renderer.Width()
	h := m.height - lipgloss.Height(m.top()) - lipgloss.Height(m.bottom())
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h

	rows := m.renderer.Rows(m.state.Entries)
	if rows == "" && !m.state.Loading {
		rows = m.cfg.Theme.Muted.Render("No players found")
	}
	m.viewport.SetContent(rows)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading leaderboard..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.top(), m.viewport.View(), m.bottom())
}
