package scheme

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneDoesNotShareSlices(t *testing.T) {
	s := Scheme{ID: "a", Objectives: []string{"x"}, Resources: []string{"y"}}
	c := s.Clone()
	c.Objectives[0] = "changed"
	c.Resources = append(c.Resources, "z")

	assert.Equal(t, []string{"x"}, s.Objectives)
	assert.Equal(t, []string{"y"}, s.Resources)
}

func TestApplyKeepsIdentity(t *testing.T) {
	created := Timestamp(time.Now())
	s := Scheme{ID: "a", Title: "old", CreatedAt: created}
	in := Input{Title: "new", Duration: 3, Objectives: []string{"o"}}
	s.Apply(in)
	in.Objectives[0] = "mutated"

	assert.Equal(t, "a", s.ID)
	assert.True(t, s.CreatedAt.Equal(created))
	assert.Equal(t, "new", s.Title)
	assert.Equal(t, []string{"o"}, s.Objectives)
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	var err error = fmt.Errorf("submit: %w", &ValidationError{Fields: []string{"duration"}})
	require.True(t, errors.Is(err, ErrValidationFailed))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("duration"))
	assert.False(t, verr.HasField("title"))
	assert.Contains(t, err.Error(), "duration")
}

func TestSampleSchemes(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 123456789, time.UTC)
	list := SampleSchemes(now)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, Timestamp(now), list[0].CreatedAt)
	assert.Equal(t, Timestamp(now.Add(-48*time.Hour)), list[2].CreatedAt)
	for _, s := range list {
		assert.Greater(t, s.Duration, 0)
		assert.NotEmpty(t, s.Objectives)
		assert.NotEmpty(t, s.Resources)
	}
}
