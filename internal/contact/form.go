// Package contact models the contact form and relays submissions to an
// external form endpoint.
package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Status is the submission state of the form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Field names as posted by the page and forwarded to the relay.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldCompany  = "company"
	FieldMessage  = "message"
	FieldHoneypot = "_gotcha"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("contact: submission in progress")
	// ErrInvalid is returned when required fields are missing or malformed.
	ErrInvalid = errors.New("contact: invalid submission")
	// ErrUnknownField is returned by Edit for names outside the form.
	ErrUnknownField = errors.New("contact: unknown field")
)

// Fields are the visitor-provided values.
type Fields struct {
	Name     string
	Email    string
	Company  string
	Message  string
	Honeypot string
}

// Submission is what a Relay forwards.
type Submission struct {
	Fields    Fields
	Subject   string
	Reference string
}

// Relay delivers a submission to the outside world.
type Relay interface {
	Send(ctx context.Context, sub Submission) error
}

// Form is the contact form state machine. The zero value is an idle, empty form.
type Form struct {
	Fields    Fields
	Status    Status
	Errors    map[string]string
	Message   string
	Reference string
}

// New returns an idle form.
func New() *Form {
	return &Form{Status: StatusIdle}
}

// Edit updates one field. Typing again dismisses a success confirmation.
func (f *Form) Edit(field, value string) error {
	switch field {
	case FieldName:
		f.Fields.Name = value
	case FieldEmail:
		f.Fields.Email = value
	case FieldCompany:
		f.Fields.Company = value
	case FieldMessage:
		f.Fields.Message = value
	case FieldHoneypot:
		f.Fields.Honeypot = value
	default:
		return ErrUnknownField
	}
	delete(f.Errors, field)
	if f.Status == StatusSuccess {
		f.Status = StatusIdle
		f.Message = ""
		f.Reference = ""
	}
	return nil
}

// Validate fills Errors with field keys and returns ErrInvalid when any check fails.
func (f *Form) Validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(f.Fields.Name) == "" {
		errs[FieldName] = "required"
	}
	email := strings.TrimSpace(f.Fields.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "required"
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs[FieldEmail] = "invalid"
		}
	}
	if strings.TrimSpace(f.Fields.Message) == "" {
		errs[FieldMessage] = "required"
	}
	if len(errs) == 0 {
		f.Errors = nil
		return nil
	}
	f.Errors = errs
	return ErrInvalid
}

// Submit validates and relays the form. A filled honeypot reports success
// without contacting the relay. On success the fields are cleared; on failure
// they are kept so the visitor can retry.
func (f *Form) Submit(ctx context.Context, relay Relay, subject string) error {
	if f.Status == StatusSending {
		return ErrBusy
	}
	if strings.TrimSpace(f.Fields.Honeypot) != "" {
		f.succeed(newReference())
		return nil
	}
	if err := f.Validate(); err != nil {
		f.Status = StatusError
		return err
	}
	if relay == nil {
		relay = LogRelay{}
	}

	f.Status = StatusSending
	ref := newReference()
	err := relay.Send(ctx, Submission{Fields: f.trimmed(), Subject: subject, Reference: ref})
	if err != nil {
		f.Status = StatusError
		return err
	}
	f.succeed(ref)
	return nil
}

// Sending reports whether the submit control should be disabled.
func (f *Form) Sending() bool { return f.Status == StatusSending }

func (f *Form) succeed(ref string) {
	f.Fields = Fields{}
	f.Errors = nil
	f.Status = StatusSuccess
	f.Reference = ref
}

func (f *Form) trimmed() Fields {
	return Fields{
		Name:     strings.TrimSpace(f.Fields.Name),
		Email:    strings.TrimSpace(f.Fields.Email),
		Company:  strings.TrimSpace(f.Fields.Company),
		Message:  strings.TrimSpace(f.Fields.Message),
		Honeypot: f.Fields.Honeypot,
	}
}

func newReference() string {
	return ulid.Make().String()
}
