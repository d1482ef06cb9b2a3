// Package search derives the visible scheme list from a query string.
//
// Match is the pure filter. Filter wraps it with debounced recomputation: a
// new query or record set cancels the pending evaluation and starts a new
// quiescence interval, and only the evaluation that survives the interval
// delivers a result.
package search

import (
	"strings"
	"sync"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/pkg/logger"
	"github.com/gogotex/schemes/pkg/metrics"
)

// DefaultInterval is the quiescence interval used when none is configured.
const DefaultInterval = 300 * time.Millisecond

// Match returns the schemes with any string field containing query,
// case-insensitively. Durations, lists and timestamps are not searched.
// An empty query matches everything.
func Match(records []scheme.Scheme, query string) []scheme.Scheme {
	q := strings.ToLower(query)
	out := make([]scheme.Scheme, 0, len(records))
	for _, s := range records {
		for _, v := range s.SearchableFields() {
			if strings.Contains(strings.ToLower(v), q) {
				out = append(out, s.Clone())
				break
			}
		}
	}
	return out
}

// Result is one delivered evaluation.
type Result struct {
	Query   string
	Schemes []scheme.Scheme
}

// Filter holds the current query, the record set it filters and the last
// delivered result.
type Filter struct {
	mu       sync.Mutex
	interval time.Duration
	onResult func(Result)

	query   string
	records []scheme.Scheme
	results []scheme.Scheme
	loading bool

	gen     uint64
	timer   *time.Timer
	pending func()
	closed  bool
}

type Option func(*Filter)

// WithInterval sets the quiescence interval. Zero or negative means DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(f *Filter) {
		if d > 0 {
			f.interval = d
		}
	}
}

// WithResultHook registers fn to receive every delivered result. fn runs with
// the filter locked and must not call back into it.
func WithResultHook(fn func(Result)) Option {
	return func(f *Filter) { f.onResult = fn }
}

// New returns a filter over records with an empty query. The first
// evaluation is scheduled immediately, so the filter starts out loading.
func New(records []scheme.Scheme, opts ...Option) *Filter {
	f := &Filter{interval: DefaultInterval, records: scheme.CloneAll(records), results: []scheme.Scheme{}}
	for _, o := range opts {
		o(f)
	}
	f.mu.Lock()
	f.scheduleLocked()
	f.mu.Unlock()
	return f
}

// SetQuery replaces the query and restarts the quiescence interval. Setting
// the current query again does nothing.
func (f *Filter) SetQuery(q string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q == f.query {
		return
	}
	f.query = q
	f.scheduleLocked()
}

// SetRecords replaces the record set and restarts the quiescence interval.
func (f *Filter) SetRecords(records []scheme.Scheme) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = scheme.CloneAll(records)
	f.scheduleLocked()
}

func (f *Filter) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Loading reports whether an evaluation is pending.
func (f *Filter) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Results returns the last delivered result. It never reflects a query whose
// evaluation is still pending.
func (f *Filter) Results() []scheme.Scheme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return scheme.CloneAll(f.results)
}

// Flush runs the pending evaluation now instead of waiting for the interval.
// It is a no-op when nothing is pending.
func (f *Filter) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.pending()
}

// Close cancels any pending evaluation without delivering it. Later calls
// to SetQuery/SetRecords still update state but schedule nothing.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	f.closed = true
	f.loading = false
}

func (f *Filter) cancelLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if f.pending != nil {
		metrics.SearchSuperseded.Inc()
		f.pending = nil
	}
}

func (f *Filter) scheduleLocked() {
	f.cancelLocked()
	if f.closed {
		return
	}
	f.gen++
	gen := f.gen
	query, records := f.query, f.records
	f.loading = true
	f.pending = func() { f.deliverLocked(gen, query, records) }
	f.timer = time.AfterFunc(f.interval, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// a newer query, Flush or Close got here first
		if gen != f.gen || f.pending == nil {
			return
		}
		f.pending()
	})
}

func (f *Filter) deliverLocked(gen uint64, query string, records []scheme.Scheme) {
	if gen != f.gen {
		return
	}
	f.pending = nil
	f.timer = nil
	f.results = Match(records, query)
	f.loading = false
	metrics.SearchEvaluations.Inc()
	logger.Debugf("search %q matched %d of %d schemes", query, len(f.results), len(records))
	if f.onResult != nil {
		f.onResult(Result{Query: query, Schemes: scheme.CloneAll(f.results)})
	}
}
