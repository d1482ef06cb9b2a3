package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/internal/scheme/store"
	"github.com/gogotex/schemes/pkg/logger"
	"github.com/gogotex/schemes/pkg/metrics"
	"github.com/google/uuid"
)

// Repo is the in-memory source of truth for the session's schemes. It keeps
// display order (newest creates first) and writes the whole list through to
// its store after every committed mutation.
type Repo struct {
	mu    sync.RWMutex
	list  []scheme.Scheme
	store store.Store
	now   func() time.Time
	newID func() string
}

type Option func(*Repo)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) { r.now = now }
}

// WithIDGenerator overrides the id source. Ids that collide with an existing
// scheme are discarded and drawn again.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repo) { r.newID = gen }
}

// Open loads the list from st. When st holds nothing yet the sample schemes
// are used and written back immediately.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Repo, error) {
	r := &Repo{store: st, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(r)
	}
	list, ok, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schemes: %w", err)
	}
	if !ok {
		logger.Infof("store %s is empty, seeding sample schemes", st.Driver())
		r.list = scheme.SampleSchemes(r.now())
		if err := r.persist(ctx); err != nil {
			logger.Warnf("seed schemes: %v", err)
		}
		return r, nil
	}
	r.list = dedupe(list)
	logger.Debugf("loaded %d schemes from %s", len(r.list), st.Driver())
	return r, nil
}

// dedupe keeps the first scheme for every id so uniqueness holds even when
// the stored payload was edited by hand.
func dedupe(list []scheme.Scheme) []scheme.Scheme {
	seen := make(map[string]struct{}, len(list))
	out := make([]scheme.Scheme, 0, len(list))
	for _, s := range list {
		if _, dup := seen[s.ID]; dup {
			logger.Warnf("dropping stored scheme with duplicate id %q", s.ID)
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}

// List returns copies of all schemes in display order.
func (r *Repo) List() []scheme.Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := scheme.CloneAll(r.list)
	if out == nil {
		out = []scheme.Scheme{}
	}
	return out
}

func (r *Repo) Get(id string) (scheme.Scheme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return scheme.Scheme{}, scheme.ErrNotFound
	}
	return r.list[i].Clone(), nil
}

// Create stores a new scheme in front of all existing ones. A non-nil error
// wrapping scheme.ErrPersist means the scheme was kept in memory but the
// store write failed.
func (r *Repo) Create(ctx context.Context, in scheme.Input) (scheme.Scheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := scheme.Scheme{ID: r.uniqueID(), CreatedAt: scheme.Timestamp(r.now())}
	s.Apply(in)
	r.list = append([]scheme.Scheme{s}, r.list...)
	metrics.SchemeMutations.WithLabelValues("create").Inc()
	logger.Debugf("created scheme %s %q", s.ID, s.Title)
	return s.Clone(), r.persist(ctx)
}

// Update replaces the editable fields of the scheme with the given id in
// place. ID, CreatedAt and position are preserved.
func (r *Repo) Update(ctx context.Context, id string, in scheme.Input) (scheme.Scheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return scheme.Scheme{}, scheme.ErrNotFound
	}
	r.list[i].Apply(in)
	metrics.SchemeMutations.WithLabelValues("update").Inc()
	logger.Debugf("updated scheme %s", id)
	return r.list[i].Clone(), r.persist(ctx)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return scheme.ErrNotFound
	}
	r.list = append(r.list[:i:i], r.list[i+1:]...)
	metrics.SchemeMutations.WithLabelValues("delete").Inc()
	logger.Debugf("deleted scheme %s", id)
	return r.persist(ctx)
}

func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}

func (r *Repo) indexOf(id string) int {
	for i := range r.list {
		if r.list[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repo) uniqueID() string {
	for {
		id := r.newID()
		if id != "" && r.indexOf(id) < 0 {
			return id
		}
	}
}

// persist must be called with r.mu held so saves reach the store in
// mutation order.
func (r *Repo) persist(ctx context.Context) error {
	driver := r.store.Driver()
	if err := r.store.Save(ctx, r.list); err != nil {
		metrics.StoreWrites.WithLabelValues(driver, "error").Inc()
		logger.Errorf("save schemes to %s: %v", driver, err)
		return fmt.Errorf("%w: %v", scheme.ErrPersist, err)
	}
	metrics.StoreWrites.WithLabelValues(driver, "ok").Inc()
	return nil
}
