// Package form holds the transient editing state behind the scheme form.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gogotex/schemes/internal/scheme"
)

var (
	ErrFormInactive = errors.New("form is not open")
	ErrUnknownField = errors.New("unknown form field")
)

type Mode int

const (
	Inactive Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return "inactive"
}

// Scalar and list field names, as used by SetField and the array operations.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSubject     = "subject"
	FieldGrade       = "grade"
	FieldDuration    = "duration"
	FieldObjectives  = "objectives"
	FieldResources   = "resources"
)

// Submission is what a successful Submit hands back for persisting. ID and
// CreatedAt are set only when an existing scheme was edited.
type Submission struct {
	ID        string
	CreatedAt time.Time
	Input     scheme.Input
}

// IsNew reports whether the submission should create a scheme.
func (s Submission) IsNew() bool { return s.ID == "" }

// Controller is the create/edit state machine. It is not safe for
// concurrent use; the app controller serialises access.
type Controller struct {
	mode      Mode
	id        string
	createdAt time.Time
	draft     scheme.Input
	validate  *validator.Validate
}

func New() *Controller {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Controller{validate: v}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Active() bool { return c.mode != Inactive }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() scheme.Input { return c.draft.Clone() }

// EditingID returns the id of the scheme being edited, or "".
func (c *Controller) EditingID() string { return c.id }

// OpenCreate starts a blank draft with one empty objective and resource.
func (c *Controller) OpenCreate() {
	c.mode = Creating
	c.id = ""
	c.createdAt = time.Time{}
	c.draft = scheme.Input{Objectives: []string{""}, Resources: []string{""}}
}

// OpenEdit starts a draft from s. Empty lists are padded to one blank entry
// so the at-least-one invariant holds from the start.
func (c *Controller) OpenEdit(s scheme.Scheme) {
	c.mode = Editing
	c.id = s.ID
	c.createdAt = s.CreatedAt
	c.draft = s.Input()
	if len(c.draft.Objectives) == 0 {
		c.draft.Objectives = []string{""}
	}
	if len(c.draft.Resources) == 0 {
		c.draft.Resources = []string{""}
	}
}

// SetField replaces a scalar field. Duration text that is not an integer is
// stored as 0 and rejected at submit.
func (c *Controller) SetField(name, value string) error {
	if !c.Active() {
		return ErrFormInactive
	}
	switch name {
	case FieldTitle:
		c.draft.Title = value
	case FieldDescription:
		c.draft.Description = value
	case FieldSubject:
		c.draft.Subject = value
	case FieldGrade:
		c.draft.Grade = value
	case FieldDuration:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = 0
		}
		c.draft.Duration = n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (c *Controller) list(field string) (*[]string, error) {
	if !c.Active() {
		return nil, ErrFormInactive
	}
	switch field {
	case FieldObjectives:
		return &c.draft.Objectives, nil
	case FieldResources:
		return &c.draft.Resources, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func (c *Controller) SetArrayItem(field string, index int, value string) error {
	l, err := c.list(field)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*l) {
		return fmt.Errorf("%w: %s[%d] (len %d)", scheme.ErrIndexOutOfRange, field, index, len(*l))
	}
	(*l)[index] = value
	return nil
}

// AddArrayItem appends an empty entry.
func (c *Controller) AddArrayItem(field string) error {
	l, err := c.list(field)
	if err != nil {
		return err
	}
	*l = append(*l, "")
	return nil
}

// RemoveArrayItem drops the entry at index. Removing the last remaining
// entry is silently ignored.
func (c *Controller) RemoveArrayItem(field string, index int) error {
	l, err := c.list(field)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*l) {
		return fmt.Errorf("%w: %s[%d] (len %d)", scheme.ErrIndexOutOfRange, field, index, len(*l))
	}
	if len(*l) <= 1 {
		return nil
	}
	*l = append((*l)[:index:index], (*l)[index+1:]...)
	return nil
}

// Submit validates the draft. On success the form closes and the submission
// is returned; on failure the form stays open and the error is a
// *scheme.ValidationError.
func (c *Controller) Submit() (Submission, error) {
	if !c.Active() {
		return Submission{}, ErrFormInactive
	}
	if err := c.check(); err != nil {
		return Submission{}, err
	}
	sub := Submission{ID: c.id, CreatedAt: c.createdAt, Input: c.draft.Clone()}
	c.reset()
	return sub, nil
}

func (c *Controller) check() error {
	err := c.validate.Struct(c.draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &scheme.ValidationError{Fields: fields}
}

// Cancel discards the draft.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.mode = Inactive
	c.id = ""
	c.createdAt = time.Time{}
	c.draft = scheme.Input{}
}
