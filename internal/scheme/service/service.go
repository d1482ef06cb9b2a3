// Package service composes the repository, search filter, form and deletion
// state machines into the application controller the presentation layer
// talks to.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/gogotex/schemes/internal/scheme/deletion"
	"github.com/gogotex/schemes/internal/scheme/form"
	"github.com/gogotex/schemes/internal/scheme/search"
	"github.com/gogotex/schemes/pkg/logger"
)

var ErrUnknownFont = errors.New("unknown font")

// Repository is the subset of repository.Repo the controller needs.
type Repository interface {
	List() []scheme.Scheme
	Get(id string) (scheme.Scheme, error)
	Create(ctx context.Context, in scheme.Input) (scheme.Scheme, error)
	Update(ctx context.Context, id string, in scheme.Input) (scheme.Scheme, error)
	Delete(ctx context.Context, id string) error
}

type View string

const (
	ViewList          View = "list"
	ViewForm          View = "form"
	ViewConfirmDelete View = "confirm-delete"
)

// Font is the cosmetic font selection. It has no effect on the core.
type Font string

const (
	FontArial   Font = "font-arial"
	FontTimes   Font = "font-times"
	FontCourier Font = "font-courier"
	FontVerdana Font = "font-verdana"
	FontGeorgia Font = "font-georgia"
)

var Fonts = []Font{FontArial, FontTimes, FontCourier, FontVerdana, FontGeorgia}

func ParseFont(s string) (Font, error) {
	for _, f := range Fonts {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFont, s)
}

// FormState is the visible part of an open form.
type FormState struct {
	Mode      string       `json:"mode"`
	EditingID string       `json:"editingId,omitempty"`
	Draft     scheme.Input `json:"draft"`
	Errors    []string     `json:"errors,omitempty"`
}

// State is a snapshot of everything the presentation layer renders.
type State struct {
	View            View            `json:"view"`
	Schemes         []scheme.Scheme `json:"schemes"`
	Loading         bool            `json:"loading"`
	Query           string          `json:"query"`
	Font            Font            `json:"font"`
	Form            *FormState      `json:"form,omitempty"`
	PendingDeletion *scheme.Scheme  `json:"pendingDeletion,omitempty"`
	Notice          string          `json:"notice,omitempty"`
}

// App routes user intents. All methods are safe for concurrent use; intents
// are applied one at a time in arrival order.
type App struct {
	mu         sync.Mutex
	repo       Repository
	filter     *search.Filter
	form       *form.Controller
	deletion   deletion.Confirmation
	font       Font
	notice     string
	formErrors []string
}

type options struct {
	debounce   time.Duration
	font       Font
	resultHook func(search.Result)
}

type Option func(*options)

func WithDebounce(d time.Duration) Option { return func(o *options) { o.debounce = d } }

func WithFont(f Font) Option { return func(o *options) { o.font = f } }

// WithSearchHook observes every delivered search result. fn runs with the
// search filter locked and must not call back into the App.
func WithSearchHook(fn func(search.Result)) Option {
	return func(o *options) { o.resultHook = fn }
}

func New(repo Repository, opts ...Option) *App {
	o := options{debounce: search.DefaultInterval, font: FontArial}
	for _, fn := range opts {
		fn(&o)
	}
	fopts := []search.Option{search.WithInterval(o.debounce)}
	if o.resultHook != nil {
		fopts = append(fopts, search.WithResultHook(o.resultHook))
	}
	return &App{
		repo:   repo,
		filter: search.New(repo.List(), fopts...),
		form:   form.New(),
		font:   o.font,
	}
}

// Close stops the pending search evaluation, if any.
func (a *App) Close() {
	a.filter.Close()
}

// State returns the current snapshot.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := State{
		View:    a.viewLocked(),
		Schemes: a.filter.Results(),
		Loading: a.filter.Loading(),
		Query:   a.filter.Query(),
		Font:    a.font,
		Notice:  a.notice,
	}
	if a.form.Active() {
		st.Form = &FormState{
			Mode:      a.form.Mode().String(),
			EditingID: a.form.EditingID(),
			Draft:     a.form.Draft(),
			Errors:    append([]string(nil), a.formErrors...),
		}
	}
	if t, ok := a.deletion.Target(); ok {
		st.PendingDeletion = &t
	}
	return st
}

func (a *App) viewLocked() View {
	switch {
	case a.form.Active():
		return ViewForm
	case a.deletion.Pending():
		return ViewConfirmDelete
	}
	return ViewList
}

// Search filters the repository immediately, bypassing the debounce.
func (a *App) Search(q string) []scheme.Scheme {
	return search.Match(a.repo.List(), q)
}

// FlushSearch delivers the pending search result now.
func (a *App) FlushSearch() {
	a.filter.Flush()
}

func (a *App) SetSearch(q string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice = ""
	a.filter.SetQuery(q)
}

func (a *App) ClearSearch() { a.SetSearch("") }

func (a *App) SetFont(name string) error {
	f, err := ParseFont(name)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.font = f
	return nil
}

// AddScheme opens a blank form.
func (a *App) AddScheme() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletion.Dismiss()
	a.notice = ""
	a.formErrors = nil
	a.form.OpenCreate()
}

// EditScheme opens the form on the scheme with the given id.
func (a *App) EditScheme(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.repo.Get(id)
	if err != nil {
		a.noticeLocked(err)
		a.refreshLocked()
		return err
	}
	a.deletion.Dismiss()
	a.notice = ""
	a.formErrors = nil
	a.form.OpenEdit(s)
	return nil
}

func (a *App) SetField(name, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form.SetField(name, value)
}

func (a *App) SetArrayItem(field string, index int, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.arrayErr(a.form.SetArrayItem(field, index, value))
}

func (a *App) AddArrayItem(field string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form.AddArrayItem(field)
}

func (a *App) RemoveArrayItem(field string, index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.arrayErr(a.form.RemoveArrayItem(field, index))
}

// arrayErr logs out-of-range indexes loudly: a correct client never sends one.
func (a *App) arrayErr(err error) error {
	if errors.Is(err, scheme.ErrIndexOutOfRange) {
		logger.Errorf("form: %v", err)
	}
	return err
}

// SubmitForm validates the draft and persists it. Validation failures keep
// the form open with the offending fields listed in State().Form.Errors.
// A scheme.ErrPersist error means the change is live in memory but the
// store write failed.
func (a *App) SubmitForm(ctx context.Context) (scheme.Scheme, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sub, err := a.form.Submit()
	if err != nil {
		var verr *scheme.ValidationError
		if errors.As(err, &verr) {
			a.formErrors = append([]string(nil), verr.Fields...)
		}
		return scheme.Scheme{}, err
	}
	a.formErrors = nil

	var s scheme.Scheme
	if sub.IsNew() {
		s, err = a.repo.Create(ctx, sub.Input)
	} else {
		s, err = a.repo.Update(ctx, sub.ID, sub.Input)
	}
	a.noticeLocked(err)
	a.refreshLocked()
	if err != nil && !errors.Is(err, scheme.ErrPersist) {
		return scheme.Scheme{}, err
	}
	return s, err
}

// CancelForm discards the draft without saving.
func (a *App) CancelForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.formErrors = nil
	a.form.Cancel()
}

// RequestDelete asks for confirmation before deleting the scheme. An open
// form is discarded so only the confirmation is showing.
func (a *App) RequestDelete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.repo.Get(id)
	if err != nil {
		a.noticeLocked(err)
		a.refreshLocked()
		return err
	}
	a.notice = ""
	a.formErrors = nil
	a.form.Cancel()
	a.deletion.Request(s)
	return nil
}

func (a *App) ConfirmDelete(ctx context.Context) (scheme.Scheme, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.deletion.Confirm(ctx, a.repo)
	if errors.Is(err, deletion.ErrNothingPending) {
		return scheme.Scheme{}, err
	}
	a.noticeLocked(err)
	a.refreshLocked()
	return s, err
}

// DismissDelete closes the confirmation without deleting. Safe to call when
// nothing is pending.
func (a *App) DismissDelete() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletion.Dismiss()
}

func (a *App) refreshLocked() {
	a.filter.SetRecords(a.repo.List())
}

func (a *App) noticeLocked(err error) {
	switch {
	case err == nil:
		a.notice = ""
	case errors.Is(err, scheme.ErrNotFound):
		a.notice = "That scheme no longer exists; the list has been refreshed."
		logger.Warnf("intent on missing scheme: %v", err)
	case errors.Is(err, scheme.ErrPersist):
		a.notice = "Changes are kept for this session but could not be saved."
	default:
		a.notice = err.Error()
	}
}
