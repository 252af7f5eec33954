// Package budget tracks upstream request volume against an advisory daily
// limit. OpenAlex grants 100k requests per day; the tracker never blocks a
// request, it only warns when the day's count crosses the configured limit
// so operators can see the overrun in the logs.
package budget

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Tracker counts requests per UTC day. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	limit  int64
	day    string
	count  int64
	warned bool
	logger zerolog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewTracker creates a Tracker with the given daily limit. A non-positive
// limit disables tracking.
func NewTracker(limit int64, logger zerolog.Logger) *Tracker {
	return &Tracker{
		limit:  limit,
		logger: logger.With().Str("component", "budget").Logger(),
		now:    time.Now,
	}
}

// Record counts one upstream request. The count resets at UTC midnight;
// crossing the limit logs a single warning per day.
func (t *Tracker) Record() {
	if t == nil || t.limit <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	day := t.now().UTC().Format("2006-01-02")
	if day != t.day {
		t.day = day
		t.count = 0
		t.warned = false
	}

	t.count++
	if t.count > t.limit && !t.warned {
		t.warned = true
		t.logger.Warn().
			Int64("count", t.count).
			Int64("daily_limit", t.limit).
			Str("day", day).
			Msg("daily request budget exceeded")
	}
}

// Count returns the number of requests recorded for the current UTC day.
func (t *Tracker) Count() int64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.now().UTC().Format("2006-01-02") != t.day {
		return 0
	}
	return t.count
}
