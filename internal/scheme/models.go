package scheme

import "time"

// Scheme is a single education scheme as shown on the card grid and
// persisted by the configured store.
type Scheme struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Subject     string    `json:"subject" bson:"subject"`
	Grade       string    `json:"grade" bson:"grade"`
	Duration    int       `json:"duration" bson:"duration"`
	Objectives  []string  `json:"objectives" bson:"objectives"`
	Resources   []string  `json:"resources" bson:"resources"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Input holds the user-editable fields of a Scheme.
type Input struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Subject     string   `json:"subject" validate:"required"`
	Grade       string   `json:"grade" validate:"required"`
	Duration    int      `json:"duration" validate:"gt=0"`
	Objectives  []string `json:"objectives" validate:"min=1"`
	Resources   []string `json:"resources" validate:"min=1"`
}

// Input returns the editable part of s.
func (s Scheme) Input() Input {
	return Input{
		Title:       s.Title,
		Description: s.Description,
		Subject:     s.Subject,
		Grade:       s.Grade,
		Duration:    s.Duration,
		Objectives:  cloneStrings(s.Objectives),
		Resources:   cloneStrings(s.Resources),
	}
}

// Apply copies in onto s, leaving ID and CreatedAt untouched.
func (s *Scheme) Apply(in Input) {
	s.Title = in.Title
	s.Description = in.Description
	s.Subject = in.Subject
	s.Grade = in.Grade
	s.Duration = in.Duration
	s.Objectives = cloneStrings(in.Objectives)
	s.Resources = cloneStrings(in.Resources)
}

// Clone returns a deep copy; slices are never shared between copies.
func (s Scheme) Clone() Scheme {
	out := s
	out.Objectives = cloneStrings(s.Objectives)
	out.Resources = cloneStrings(s.Resources)
	return out
}

// Clone returns a deep copy of in.
func (in Input) Clone() Input {
	out := in
	out.Objectives = cloneStrings(in.Objectives)
	out.Resources = cloneStrings(in.Resources)
	return out
}

// CloneAll deep-copies a list of schemes, preserving order.
func CloneAll(list []Scheme) []Scheme {
	if list == nil {
		return nil
	}
	out := make([]Scheme, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// SearchableFields returns the string-typed values a search query is matched against.
func (s Scheme) SearchableFields() []string {
	return []string{s.ID, s.Title, s.Description, s.Subject, s.Grade}
}

// Timestamp normalises t to UTC millisecond precision, which every store
// backend round-trips without loss.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
