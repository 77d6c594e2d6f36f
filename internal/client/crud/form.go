package crud

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beehive-drones/admin/internal/client/models"
)

var (
	// ErrBusy is returned by Submit and Update while a submit is in flight.
	ErrBusy = errors.New("submit already in progress")
	// ErrClosed is returned once an edit modal has saved or a form was
	// discarded.
	ErrClosed = errors.New("form is closed")
)

// State is the position of a form in its submit cycle.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type formMode int

const (
	modeCreate formMode = iota
	modeEdit
)

// Form holds a draft and submits it. A failed submit leaves the draft
// exactly as it was; a successful create resets it to empty.
type Form[R models.Record, D any] struct {
	ctrl    *Controller[R, D]
	name    string
	options *Options
	send    func(ctx context.Context, d D) (R, error)
	reset   func() D
	mode    formMode

	mu    sync.Mutex
	state State
	draft D
	err   error
}

// Draft returns the current draft. Change it through Update.
func (f *Form[R, D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Update applies fn to a copy of the draft and keeps the result only when
// fn succeeds. Edits are refused while a submit is in flight.
func (f *Form[R, D]) Update(fn func(d *D) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case Validating, Submitting:
		return ErrBusy
	case Closed:
		return ErrClosed
	}

	d := f.draft
	if err := fn(&d); err != nil {
		return err
	}
	f.draft = d
	return nil
}

// Options are the relation option lists of this form.
func (f *Form[R, D]) Options() *Options { return f.options }

func (f *Form[R, D]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether the submit control should be disabled.
func (f *Form[R, D]) Busy() bool {
	s := f.State()
	return s == Validating || s == Submitting
}

// Err is the error of the last failed submit, cleared on success.
func (f *Form[R, D]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Discard abandons the form. A submit still in flight completes on the
// server but its response is dropped.
func (f *Form[R, D]) Discard() {
	f.mu.Lock()
	f.state = Closed
	f.mu.Unlock()
}

// Submit validates the draft, sends it and, on success, commits the server's
// record to the list view. Validation failures never reach the network.
func (f *Form[R, D]) Submit(ctx context.Context) (R, error) {
	var zero R

	f.mu.Lock()
	switch f.state {
	case Validating, Submitting:
		f.mu.Unlock()
		return zero, ErrBusy
	case Closed:
		f.mu.Unlock()
		return zero, ErrClosed
	}
	f.state = Validating
	d := f.draft
	f.mu.Unlock()

	if err := f.ctrl.res.Validate(d); err != nil {
		f.finish(err)
		f.ctrl.fail(ctx, "validate", "Failed to save "+f.name, err)
		return zero, err
	}

	f.mu.Lock()
	f.state = Submitting
	f.mu.Unlock()

	rec, err := f.send(ctx, d)
	if f.State() == Closed {
		return rec, err
	}
	if err != nil {
		f.finish(err)
		f.ctrl.fail(ctx, "submit", "Failed to save "+f.name, err)
		return zero, err
	}

	if !f.ctrl.commit(rec, f.mode == modeCreate) {
		f.mu.Lock()
		f.state = Closed
		f.mu.Unlock()
		return rec, nil
	}

	f.mu.Lock()
	f.err = nil
	if f.mode == modeCreate {
		f.state = Idle
		f.draft = f.reset()
	} else {
		f.state = Closed
	}
	f.mu.Unlock()

	verb := "added"
	if f.mode == modeEdit {
		verb = "updated"
	}
	f.ctrl.succeed(ctx, fmt.Sprintf("%s %s successfully.", title(f.name), verb))
	return rec, nil
}

func (f *Form[R, D]) finish(err error) {
	f.mu.Lock()
	if f.state != Closed {
		f.state = Idle
	}
	f.err = err
	f.mu.Unlock()
}

func newForm[R models.Record, D any](c *Controller[R, D], draft D, mode formMode, send func(ctx context.Context, d D) (R, error)) *Form[R, D] {
	return &Form[R, D]{
		ctrl:    c,
		name:    c.res.Singular(),
		options: NewOptions(c.res.Sources(c.api)...),
		send:    send,
		reset:   c.res.Empty,
		mode:    mode,
		draft:   draft,
	}
}
