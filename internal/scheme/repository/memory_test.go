package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/internal/scheme/store"
	"github.com/gogotex/schemes/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func input(title string) scheme.Input {
	return scheme.Input{
		Title:       title,
		Description: title + " description",
		Subject:     "History",
		Grade:       "College",
		Duration:    4,
		Objectives:  []string{"o1"},
		Resources:   []string{"r1"},
	}
}

func ids(list []scheme.Scheme) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

// failingStore loads fine but refuses every save.
type failingStore struct{ *store.MemoryStore }

func (f failingStore) Save(ctx context.Context, list []scheme.Scheme) error {
	return errors.New("disk full")
}

func TestOpenSeedsEmptyStore(t *testing.T) {
	st := store.NewMemoryStore()
	r, err := Open(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, ids(r.List()))

	// the seed is written back right away
	stored, ok, err := st.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, stored, 3)
}

func TestOpenUsesStoredList(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(context.Background(), []scheme.Scheme{}))
	r, err := Open(context.Background(), st)
	require.NoError(t, err)
	require.Empty(t, r.List())
}

func TestOpenDropsDuplicateIDs(t *testing.T) {
	st := store.NewMemoryStore()
	list := scheme.SampleSchemes(time.Now())
	list[2].ID = "1"
	require.NoError(t, st.Save(context.Background(), list))
	r, err := Open(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids(r.List()))
}

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, nil))
	r, err := Open(ctx, st)
	require.NoError(t, err)

	created, err := r.Create(ctx, input("Algebra"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := r.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Algebra", got.Title)

	in := input("Algebra II")
	in.Objectives = []string{"a", "b"}
	updated, err := r.Update(ctx, created.ID, in)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.Equal(t, []string{"a", "b"}, updated.Objectives)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.Get(created.ID)
	require.ErrorIs(t, err, scheme.ErrNotFound)
	require.Equal(t, 4, st.Saves())
}

func TestCreatePrependsAndUpdateDeleteKeepOrder(t *testing.T) {
	ctx := context.Background()
	r, err := Open(ctx, store.NewMemoryStore())
	require.NoError(t, err)

	a, err := r.Create(ctx, input("A"))
	require.NoError(t, err)
	b, err := r.Create(ctx, input("B"))
	require.NoError(t, err)
	require.Equal(t, []string{b.ID, a.ID, "1", "2", "3"}, ids(r.List()))

	_, err = r.Update(ctx, "2", input("Science Revised"))
	require.NoError(t, err)
	require.Equal(t, []string{b.ID, a.ID, "1", "2", "3"}, ids(r.List()))
	got, err := r.Get("2")
	require.NoError(t, err)
	require.Equal(t, "Science Revised", got.Title)

	require.NoError(t, r.Delete(ctx, a.ID))
	require.Equal(t, []string{b.ID, "1", "2", "3"}, ids(r.List()))
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r, err := Open(ctx, st)
	require.NoError(t, err)
	saves := st.Saves()

	_, err = r.Update(ctx, "nope", input("x"))
	require.ErrorIs(t, err, scheme.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "nope"), scheme.ErrNotFound)
	require.Equal(t, saves, st.Saves(), "failed mutations must not write")
}

func TestIDsStayUniqueWhenGeneratorCollides(t *testing.T) {
	ctx := context.Background()
	seq := []string{"1", "2", "", "fresh-1", "fresh-1", "fresh-2"}
	n := 0
	gen := func() string {
		id := seq[n%len(seq)]
		n++
		return id
	}
	r, err := Open(ctx, store.NewMemoryStore(), WithIDGenerator(gen))
	require.NoError(t, err)

	a, err := r.Create(ctx, input("a"))
	require.NoError(t, err)
	require.Equal(t, "fresh-1", a.ID)
	b, err := r.Create(ctx, input("b"))
	require.NoError(t, err)
	require.Equal(t, "fresh-2", b.ID)
}

func TestManyCreatesHaveUniqueIDs(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := Open(ctx, store.NewMemoryStore(), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		_, err := r.Create(ctx, input(fmt.Sprintf("s%d", i)))
		require.NoError(t, err)
		if i%3 == 0 {
			list := r.List()
			require.NoError(t, r.Delete(ctx, list[len(list)/2].ID))
		}
	}
	seen := map[string]bool{}
	for _, s := range r.List() {
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Save(ctx, nil))
	r, err := Open(ctx, failingStore{mem})
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.StoreWrites.WithLabelValues("memory", "error"))
	created, err := r.Create(ctx, input("kept"))
	require.ErrorIs(t, err, scheme.ErrPersist)
	require.Equal(t, "kept", created.Title)
	require.Equal(t, 1, r.Len())
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreWrites.WithLabelValues("memory", "error")))
}

func TestListReturnsCopies(t *testing.T) {
	r, err := Open(context.Background(), store.NewMemoryStore())
	require.NoError(t, err)
	list := r.List()
	list[0].Title = "mutated"
	list[0].Objectives[0] = "mutated"

	got, err := r.Get(list[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Mathematics Curriculum", got.Title)
	require.Equal(t, "Master algebraic concepts", got.Objectives[0])
}

func TestRoundTripThroughReopen(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r, err := Open(ctx, st)
	require.NoError(t, err)
	_, err = r.Create(ctx, input("persisted"))
	require.NoError(t, err)

	again, err := Open(ctx, st)
	require.NoError(t, err)
	want, got := r.List(), again.List()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Objectives, got[i].Objectives)
		require.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}
