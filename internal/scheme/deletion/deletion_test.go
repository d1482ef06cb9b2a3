package deletion

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/internal/scheme/repository"
	"github.com/gogotex/schemes/internal/scheme/store"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *repository.Repo {
	t.Helper()
	r, err := repository.Open(context.Background(), store.NewMemoryStore())
	require.NoError(t, err)
	return r
}

func TestRequestConfirmDeletes(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)
	target, err := r.Get("2")
	require.NoError(t, err)

	var c Confirmation
	c.Request(target)
	require.True(t, c.Pending())
	require.Equal(t, 3, r.Len(), "request alone must not delete")

	deleted, err := c.Confirm(ctx, r)
	require.NoError(t, err)
	require.Equal(t, "2", deleted.ID)
	require.False(t, c.Pending())
	_, err = r.Get("2")
	require.ErrorIs(t, err, scheme.ErrNotFound)
}

func TestRequestDismissLeavesRepo(t *testing.T) {
	r := openRepo(t)
	target, err := r.Get("1")
	require.NoError(t, err)

	var c Confirmation
	c.Request(target)
	c.Dismiss()
	require.False(t, c.Pending())
	require.Equal(t, 3, r.Len())
}

func TestDismissWhenIdleIsNoop(t *testing.T) {
	var c Confirmation
	c.Dismiss()
	c.Dismiss()
	require.False(t, c.Pending())
	_, ok := c.Target()
	require.False(t, ok)
}

func TestConfirmWhenIdle(t *testing.T) {
	var c Confirmation
	_, err := c.Confirm(context.Background(), openRepo(t))
	require.ErrorIs(t, err, ErrNothingPending)
}

func TestRequestReplacesTarget(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)
	first, _ := r.Get("1")
	second, _ := r.Get("3")

	var c Confirmation
	c.Request(first)
	c.Request(second)
	got, ok := c.Target()
	require.True(t, ok)
	require.Equal(t, "3", got.ID)

	_, err := c.Confirm(ctx, r)
	require.NoError(t, err)
	_, err = r.Get("1")
	require.NoError(t, err, "the replaced target survives")
	require.Equal(t, 2, r.Len())
}

func TestConfirmPropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)
	target, _ := r.Get("1")

	var c Confirmation
	c.Request(target)
	require.NoError(t, r.Delete(ctx, "1"))

	_, err := c.Confirm(ctx, r)
	require.ErrorIs(t, err, scheme.ErrNotFound)
	require.False(t, c.Pending())
}

func TestTargetIsACopy(t *testing.T) {
	s := scheme.SampleSchemes(time.Now())[0]
	var c Confirmation
	c.Request(s)
	s.Objectives[0] = "changed"
	got, _ := c.Target()
	require.Equal(t, "Master algebraic concepts", got.Objectives[0])
}
