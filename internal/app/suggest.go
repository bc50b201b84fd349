package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/debounce"
)

// DefaultDebounce is the autocomplete quiescence interval.
const DefaultDebounce = 500 * time.Millisecond

// Suggester turns keystrokes into debounced geocoding lookups. Requests are
// tagged with a sequence number so a slow response for an old query can never
// overwrite the suggestions for a newer one: the last request issued wins.
type Suggester struct {
	svc       WeatherService
	view      View
	debouncer *debounce.Debouncer
	limit     int

	mu  sync.Mutex
	seq uint64
}

// NewSuggester creates a Suggester rendering into view. interval <= 0 falls
// back to DefaultDebounce.
func NewSuggester(svc WeatherService, view View, interval time.Duration, limit int) *Suggester {
	if view == nil {
		view = NopView{}
	}
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if limit <= 0 {
		limit = 5
	}
	return &Suggester{
		svc:       svc,
		view:      view,
		debouncer: debounce.New(interval),
		limit:     limit,
	}
}

// OnInput reacts to one keystroke's worth of input. An empty query cancels
// any pending lookup and clears the suggestion list.
func (s *Suggester) OnInput(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.debouncer.Cancel()
		s.mu.Lock()
		s.seq++ // orphan any in-flight response
		s.mu.Unlock()
		s.view.RenderSuggestions(nil)
		return
	}
	s.debouncer.Trigger(func() {
		s.lookup(ctx, query)
	})
}

// Close drops any pending lookup.
func (s *Suggester) Close() {
	s.debouncer.Cancel()
}

func (s *Suggester) lookup(ctx context.Context, query string) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.mu.Unlock()

	locs := s.svc.Suggest(ctx, query, s.limit)

	s.mu.Lock()
	stale := id != s.seq
	s.mu.Unlock()
	if stale {
		return
	}
	s.view.RenderSuggestions(locs)
}
