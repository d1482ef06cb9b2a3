// Package deletion implements the two-step delete: a request remembers the
// target, and only an explicit confirm removes it.
package deletion

import (
	"context"
	"errors"

	"github.com/gogotex/schemes/internal/scheme"
)

var ErrNothingPending = errors.New("no deletion pending")

// Deleter removes a scheme by id.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Confirmation holds at most one pending deletion. It is not safe for
// concurrent use.
type Confirmation struct {
	target  scheme.Scheme
	pending bool
}

// Request makes s the pending target, replacing any earlier one.
func (c *Confirmation) Request(s scheme.Scheme) {
	c.target = s.Clone()
	c.pending = true
}

func (c *Confirmation) Pending() bool { return c.pending }

// Target returns the pending scheme and whether there is one.
func (c *Confirmation) Target() (scheme.Scheme, bool) {
	if !c.pending {
		return scheme.Scheme{}, false
	}
	return c.target.Clone(), true
}

// Confirm deletes the pending target through d and returns to idle, even
// when d fails (for instance with scheme.ErrNotFound because the scheme is
// already gone).
func (c *Confirmation) Confirm(ctx context.Context, d Deleter) (scheme.Scheme, error) {
	if !c.pending {
		return scheme.Scheme{}, ErrNothingPending
	}
	target := c.target
	c.Dismiss()
	return target, d.Delete(ctx, target.ID)
}

// Dismiss drops the pending target. Calling it while idle does nothing.
func (c *Confirmation) Dismiss() {
	c.target = scheme.Scheme{}
	c.pending = false
}
