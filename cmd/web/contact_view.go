package main

import (
	"github.com/wynterCG/website/internal/contact"
)

// ContactView is the view model for the contact form fragment.
type ContactView struct {
	Lang      string
	CSRFToken string
	Fields    contact.Fields
	Status    string
	Errors    map[string]string
	Message   string
	Reference string
	Sending   bool
	Email     string
}

// Success reports whether the confirmation banner is shown.
func (v ContactView) Success() bool { return v.Status == string(contact.StatusSuccess) }

// Failed reports whether the error banner is shown.
func (v ContactView) Failed() bool { return v.Status == string(contact.StatusError) }

// FieldError returns the translation key for a field error, or "".
func (v ContactView) FieldError(field string) string {
	if code, ok := v.Errors[field]; ok {
		return "contact.error." + code
	}
	return ""
}

func buildContactView(f *contact.Form, lang, csrf, email string) ContactView {
	return ContactView{
		Lang:      lang,
		CSRFToken: csrf,
		Fields:    f.Fields,
		Status:    string(f.Status),
		Errors:    f.Errors,
		Message:   f.Message,
		Reference: f.Reference,
		Sending:   f.Sending(),
		Email:     email,
	}
}

// formFromFlash restores the outcome a plain form post left for the next page.
func formFromFlash(status, ref string) *contact.Form {
	f := contact.New()
	if status == string(contact.StatusSuccess) {
		f.Status = contact.StatusSuccess
		f.Reference = ref
	}
	return f
}
