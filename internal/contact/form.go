package contact

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"

	"inno8-site/internal/backend"
	xlog "inno8-site/internal/log"
)

// EndpointSubmit receives contact submissions on the backend.
const EndpointSubmit = "/contact-submit"

var (
	// ErrInvalid is returned by Submit when a rule fails. No request is made.
	ErrInvalid = errors.New("contact form is invalid")
	// ErrInFlight is returned by Submit while another submission is outstanding.
	ErrInFlight = errors.New("contact submission already in flight")
)

// Sender posts JSON to the backend. *backend.Client satisfies it.
type Sender interface {
	PostJSON(ctx context.Context, path string, in, out any, opts ...backend.RequestOption) error
}

// Form holds the contact form values together with the per-field error
// and valid flags. A field never has both an error and a valid flag.
type Form struct {
	mu     sync.Mutex
	values map[Field]string
	errs   map[Field]string
	valid  map[Field]bool

	inFlight atomic.Bool
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{
		values: make(map[Field]string),
		errs:   make(map[Field]string),
		valid:  make(map[Field]bool),
	}
}

// FormFrom returns a form pre-filled with s. No validation is run.
func FormFrom(s Submission) *Form {
	f := NewForm()
	for _, field := range Fields {
		if v := s.value(field); v != "" {
			f.values[field] = v
		}
	}
	return f
}

// Set stores value and re-validates field. An empty required field loses its
// valid flag but gains no new error until the form is submitted.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	if !validated(field) {
		return
	}

	if ValidateField(field, value) {
		delete(f.errs, field)
		if strings.TrimSpace(value) != "" {
			f.valid[field] = true
		} else {
			delete(f.valid, field)
		}
		return
	}

	delete(f.valid, field)
	if strings.TrimSpace(value) != "" {
		f.errs[field] = Message(field, value)
	}
}

// Validate runs every rule, replacing the error and valid maps. It reports
// whether the form can be submitted.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	failed := Check(f.submissionLocked())
	for _, field := range Fields {
		if !validated(field) {
			continue
		}
		if msg, bad := failed[field]; bad {
			f.errs[field] = msg
			delete(f.valid, field)
			continue
		}
		delete(f.errs, field)
		if strings.TrimSpace(f.values[field]) != "" {
			f.valid[field] = true
		} else {
			delete(f.valid, field)
		}
	}
	return len(failed) == 0
}

// Submit validates the form and, if it passes, sends it. On success the
// form is cleared. On failure it is left as is.
func (f *Form) Submit(ctx context.Context, s Sender) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		MetricSubmissions.WithLabelValues("busy").Inc()
		return ErrInFlight
	}
	defer f.inFlight.Store(false)

	f.mu.Lock()
	ok := f.validateLocked()
	payload := f.submissionLocked()
	f.mu.Unlock()

	if !ok {
		MetricSubmissions.WithLabelValues("invalid").Inc()
		return ErrInvalid
	}

	if err := s.PostJSON(ctx, EndpointSubmit, payload, nil); err != nil {
		MetricSubmissions.WithLabelValues("failed").Inc()
		l := xlog.FromContext(ctx, "contact")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("contact submission failed")
		return fmt.Errorf("failed to submit contact form: %w", err)
	}

	f.mu.Lock()
	clear(f.values)
	clear(f.errs)
	clear(f.valid)
	f.mu.Unlock()

	MetricSubmissions.WithLabelValues("ok").Inc()
	return nil
}

func (f *Form) submitting() bool {
	return f.inFlight.Load()
}

// Value returns the current value of field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Submission returns the current values as a payload.
func (f *Form) Submission() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submissionLocked()
}

func (f *Form) submissionLocked() Submission {
	return Submission{
		Name:    f.values[FieldName],
		Email:   f.values[FieldEmail],
		Phone:   f.values[FieldPhone],
		Subject: f.values[FieldSubject],
		Message: f.values[FieldMessage],
		Address: f.values[FieldAddress],
	}
}

// Errors returns a copy of the error map.
func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errs)
}

// Valid returns a copy of the valid map.
func (f *Form) Valid() map[Field]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.valid)
}
