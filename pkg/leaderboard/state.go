package leaderboard

// State is the view state of the leaderboard screen.
//
// Entries always hold the last accepted response for the current (Page, Query)
// binding. A failed fetch sets Err and leaves Entries in place.
type State struct {
	Page       int
	Query      string
	Entries    []Entry
	TotalPages int
	Loading    bool
	Err        string // empty when the last fetch succeeded
}

// NewState returns the state of a freshly opened screen.
func NewState() State {
	return State{Page: 1, TotalPages: 1}
}

// HasPrev reports whether the previous-page control is enabled.
func (s *State) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether the next-page control is enabled.
func (s *State) HasNext() bool { return s.Page < s.TotalPages }

// GoToPage moves to target if it lies within [1, TotalPages].
// Out-of-range targets leave the state untouched and return false.
func (s *State) GoToPage(target int) bool {
	if target < 1 || target > s.TotalPages || target == s.Page {
		return false
	}
	s.Page = target
	return true
}

// SetQuery replaces the search text and restarts at the first page.
// It reports whether the query text changed.
func (s *State) SetQuery(text string) bool {
	changed := s.Query != text
	s.Query = text
	s.Page = 1
	return changed
}

// Apply records a successful fetch. When the new page count no longer covers
// Page, Page is clamped to the last page and Apply reports true; the entries
// then belong to the old page and the caller should fetch again.
func (s *State) Apply(p *Page) (clamped bool) {
	s.Entries = p.Entries
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
	s.TotalPages = TotalPages(p.Total)
	s.Err = ""
	if s.Page > s.TotalPages {
		s.Page = s.TotalPages
		return true
	}
	return false
}

// Fail records a failed fetch without discarding the entries on screen.
func (s *State) Fail(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if msg == "" {
		msg = "failed to fetch data"
	}
	s.Err = msg
}

// ShowPodium reports whether the top-three podium is displayed.
func (s *State) ShowPodium() bool {
	return s.Page == 1 && s.Query == "" && len(s.Entries) >= 3
}

// Podium returns the top three entries in display order (second, first, third),
// or nil when the podium is hidden.
func (s *State) Podium() []Standing {
	if !s.ShowPodium() {
		return nil
	}
	return []Standing{
		{Place: 2, Entry: s.Entries[1]},
		{Place: 1, Entry: s.Entries[0]},
		{Place: 3, Entry: s.Entries[2]},
	}
}
