package board

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/podium/pkg/leaderboard"
)

// binding is the (page, query) pair the refresh timer is bound to.
type binding struct {
	page  int
	query string
}

// fetchResultMsg carries a completed fetch back to Update.
type fetchResultMsg struct {
	seq  uint64
	at   binding
	page *leaderboard.Page
	err  error
}

// refreshTickMsg fires when the refresh period of timer generation gen elapses.
type refreshTickMsg struct{ gen uint64 }

// debounceMsg fires when the search box has been quiet for the debounce period.
type debounceMsg struct{ id uint64 }

type startMsg struct{}

// rebind points the scheduler at the current state: it fetches immediately and
// arms a fresh repeating timer. Ticks of the previous timer are dropped.
func (m *Model) rebind() tea.Cmd {
	m.bound = binding{page: m.state.Page, query: m.state.Query}
	m.timerGen++
	m.debounceID++ // a pending search debounce is superseded
	return tea.Batch(m.fetch(), m.scheduleTick(m.timerGen))
}

// pause stops the timer and abandons any in-flight request without issuing a
// new one. Used while the search box is being typed into.
func (m *Model) pause() {
	m.timerGen++
	m.abandon()
}

// abandon cancels the in-flight request and makes its response stale.
func (m *Model) abandon() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
	m.inflight = false
}

// fetch issues a request for the bound (page, query). The previous request, if
// any, is cancelled and its late response will be discarded.
func (m *Model) fetch() tea.Cmd {
	m.abandon()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.inflight = true
	m.state.Loading = true

	seq, at, fetcher := m.seq, m.bound, m.cfg.Fetcher
	return func() tea.Msg {
		p, err := fetcher.Fetch(ctx, at.page, at.query)
		return fetchResultMsg{seq: seq, at: at, page: p, err: err}
	}
}

func (m *Model) scheduleTick(gen uint64) tea.Cmd {
	return m.tick(m.cfg.Refresh, func(time.Time) tea.Msg { return refreshTickMsg{gen: gen} })
}

// handleTick re-fetches and re-arms the timer when the tick belongs to the live
// generation. A tick that arrives while a request is still in flight only re-arms,
// so a backend slower than the refresh period still gets to answer.
func (m *Model) handleTick(msg refreshTickMsg) tea.Cmd {
	if m.quitting || msg.gen != m.timerGen {
		return nil
	}
	if m.inflight {
		return m.scheduleTick(msg.gen)
	}
	return tea.Batch(m.fetch(), m.scheduleTick(msg.gen))
}

// handleResult applies the response of the latest request and drops the rest.
// A response whose page count no longer reaches the bound page moves the board
// to the last page and rebinds there.
func (m *Model) handleResult(msg fetchResultMsg) tea.Cmd {
	if msg.seq != m.seq {
		m.cfg.Logger.Debug("dropping stale leaderboard response",
			"seq", msg.seq, "latest", m.seq, "page", msg.at.page, "query", msg.at.query)
		if m.cfg.Stale != nil {
			m.cfg.Stale.ObserveStale()
		}
		return nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.inflight = false
	m.state.Loading = false

	if msg.err != nil {
		m.state.Fail(msg.err)
		m.cfg.Logger.Warn("failed to fetch leaderboard",
			"page", msg.at.page, "query", msg.at.query, "error", msg.err)
		return nil
	}
	if m.state.Apply(msg.page) {
		m.cfg.Logger.Debug("page past the end, moving to last page",
			"page", msg.at.page, "total_pages", m.state.TotalPages)
		m.viewport.GotoTop()
		return m.rebind()
	}
	return nil
}

// refresh implements the refresh key. While a search debounce is pending the
// bound query is stale, so the board rebinds to what is on screen instead.
func (m *Model) refresh() tea.Cmd {
	if m.bound != (binding{page: m.state.Page, query: m.state.Query}) {
		return m.rebind()
	}
	return m.fetch()
}

// queryChanged implements the search control: the page resets immediately and
// the refetch waits for the debounce period after the last keystroke.
func (m *Model) queryChanged(text string) tea.Cmd {
	if !m.state.SetQuery(text) {
		return nil
	}
	if m.cfg.Debounce <= 0 {
		return m.rebind()
	}
	m.pause()
	m.state.Loading = true
	m.debounceID++
	id := m.debounceID
	return m.tick(m.cfg.Debounce, func(time.Time) tea.Msg { return debounceMsg{id: id} })
}

func (m *Model) handleDebounce(msg debounceMsg) tea.Cmd {
	if m.quitting || msg.id != m.debounceID {
		return nil
	}
	return m.rebind()
}

// goToPage implements the pagination control.
func (m *Model) goToPage(target int) tea.Cmd {
	if !m.state.GoToPage(target) {
		return nil
	}
	m.viewport.GotoTop()
	return m.rebind()
}

// stop tears the scheduler down for good.
func (m *Model) stop() {
	m.quitting = true
	m.pause()
}
