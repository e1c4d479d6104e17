package leaderboard

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeEntries() []Entry {
	return []Entry{
		{Username: "a", Rating: 100, Rank: 1},
		{Username: "b", Rating: 90, Rank: 2},
		{Username: "c", Rating: 80, Rank: 3},
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int
		want  int
	}{
		{total: -5, want: 1},
		{total: 0, want: 1},
		{total: 1, want: 1},
		{total: 49, want: 1},
		{total: 50, want: 1},
		{total: 51, want: 2},
		{total: 100, want: 2},
		{total: 101, want: 3},
		{total: 10000, want: 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total), "total=%d", tt.total)
	}
}

func TestState_GoToPage_IgnoresTargetsOutsideRange(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.TotalPages = 3
	s.Page = 2

	for _, target := range []int{-1, 0, 4, 100} {
		before := s
		assert.False(t, s.GoToPage(target), "target=%d", target)
		assert.Equal(t, before, s)
	}

	assert.True(t, s.GoToPage(3))
	assert.Equal(t, 3, s.Page)
	assert.False(t, s.HasNext())
	assert.True(t, s.HasPrev())
}

func TestState_SetQuery_AlwaysResetsPage(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.TotalPages = 10
	s.Page = 7

	assert.True(t, s.SetQuery("bob"))
	assert.Equal(t, 1, s.Page)

	s.Page = 4
	assert.False(t, s.SetQuery("bob"), "same text is not a change")
	assert.Equal(t, 1, s.Page)
}

func TestState_Fail_KeepsEntries(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Apply(&Page{Entries: threeEntries(), Total: 3})
	s.Fail(errors.New("HTTP error! status: 500"))

	assert.Len(t, s.Entries, 3)
	assert.Contains(t, s.Err, "500")

	s.Apply(&Page{Entries: threeEntries()[:1], Total: 1})
	assert.Empty(t, s.Err, "a successful fetch clears the error")
	assert.Len(t, s.Entries, 1)
}

func TestState_Apply_ZeroTotalDisablesPagination(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Apply(&Page{Total: 0})

	assert.Equal(t, 1, s.TotalPages)
	assert.False(t, s.HasPrev())
	assert.False(t, s.HasNext())
	assert.NotNil(t, s.Entries)
}

func TestState_ShowPodium(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    int
		query   string
		entries []Entry
		want    bool
	}{
		{name: "first page no query three entries", page: 1, entries: threeEntries(), want: true},
		{name: "second page", page: 2, entries: threeEntries(), want: false},
		{name: "active search", page: 1, query: "a", entries: threeEntries(), want: false},
		{name: "two entries", page: 1, entries: threeEntries()[:2], want: false},
		{name: "no entries", page: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Page: tt.page, Query: tt.query, Entries: tt.entries, TotalPages: 5}
			assert.Equal(t, tt.want, s.ShowPodium())
			if !tt.want {
				assert.Nil(t, s.Podium())
			}
		})
	}
}

func TestState_Podium_OrdersSecondFirstThird(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Apply(&Page{Entries: threeEntries(), Total: 3})

	podium := s.Podium()
	require.Len(t, podium, 3)
	assert.Equal(t, "b", podium[0].Entry.Username)
	assert.Equal(t, 2, podium[0].Place)
	assert.Equal(t, "a", podium[1].Entry.Username)
	assert.True(t, podium[1].Winner())
	assert.Equal(t, "c", podium[2].Entry.Username)
	assert.Equal(t, 3, podium[2].Place)
}

func TestMedal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MedalGold, Medal(1))
	assert.Equal(t, MedalSilver, Medal(2))
	assert.Equal(t, MedalBronze, Medal(3))
	assert.Equal(t, MedalNone, Medal(4))
	assert.Equal(t, MedalNone, Medal(0))
}

func TestPage_UnmarshalJSON_Defaults(t *testing.T) {
	t.Parallel()

	var p Page
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.NotNil(t, p.Entries)
	assert.Empty(t, p.Entries)
	assert.Zero(t, p.Total)

	require.NoError(t, json.Unmarshal([]byte(`{"users":[{"username":"a","rating":100,"rank":1}],"total":51}`), &p))
	require.Len(t, p.Entries, 1)
	assert.Equal(t, Entry{Username: "a", Rating: 100, Rank: 1}, p.Entries[0])
	assert.Equal(t, 2, TotalPages(p.Total))
}

func TestState_Apply_ClampsPageWhenTotalShrinks(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.TotalPages = 10
	s.Page = 10
	assert.True(t, s.Apply(&Page{Total: 120}))
	assert.Equal(t, 3, s.Page)
	assert.False(t, s.HasNext())
	assert.True(t, s.GoToPage(s.Page-1), "previous works again after the clamp")

	assert.False(t, s.Apply(&Page{Total: 120}))
	assert.Equal(t, 2, s.Page)

	s.Page = 2
	assert.True(t, s.Apply(&Page{Total: 0}))
	assert.Equal(t, 1, s.Page)
}
