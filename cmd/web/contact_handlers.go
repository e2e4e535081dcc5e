package main

import (
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/wynterCG/website/internal/contact"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/observability"
)

// inflight holds the session ids with a submission being relayed.
var inflight sync.Map

var contactFields = []string{
	contact.FieldName,
	contact.FieldEmail,
	contact.FieldCompany,
	contact.FieldMessage,
	contact.FieldHoneypot,
}

// ContactSubmitHandler validates the form and relays it.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid form", err)
		return
	}
	s := mw.GetSession(r)
	lang := mw.Lang(r)
	log := observability.FromContext(r.Context())

	if _, busy := inflight.LoadOrStore(s.ID, struct{}{}); busy {
		renderError(w, r, http.StatusConflict, i18nOrDefault(lang, "contact.busy", "Your message is already being sent."), contact.ErrBusy)
		return
	}
	defer inflight.Delete(s.ID)

	f := contact.New()
	for _, name := range contactFields {
		_ = f.Edit(name, r.PostFormValue(name))
	}

	cat := catalogStore.Current()
	err := f.Submit(r.Context(), contactRelay, cat.Site.ContactSubject)
	var relayErr *contact.RelayError
	switch {
	case err == nil:
		log.Info("contact submitted", zap.String("reference", f.Reference))
		if !wantsFragment(r) {
			// shown once by the page the redirect lands on
			s.Contact = mw.ContactState{Status: string(contact.StatusSuccess), Reference: f.Reference}
			s.MarkDirty()
		}
	case errors.Is(err, contact.ErrInvalid):
		f.Message = i18nOrDefault(lang, "contact.invalid", "Please check the highlighted fields.")
	case errors.As(err, &relayErr):
		log.Warn("contact relay rejected submission", zap.Int("status", relayErr.StatusCode), zap.Strings("messages", relayErr.Messages))
		f.Message = i18nOrDefault(lang, "contact.failed", "Something went wrong. Please try again.")
	default:
		log.Error("contact relay failed", zap.Error(err))
		f.Message = i18nOrDefault(lang, "contact.failed", "Something went wrong. Please try again.")
	}

	view := buildContactView(f, lang, s.CSRFToken, cat.Site.Email)
	if !wantsFragment(r) {
		if err == nil {
			redirectHome(w, r, "contact")
			return
		}
		renderHome(w, r, &view)
		return
	}
	renderTemplate(w, r, "frag_contact", view)
}

// ContactEditHandler dismisses a success confirmation once the visitor types
// again by swapping in an idle status.
func ContactEditHandler(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	f := contact.New()
	field := r.PostFormValue("field")
	if field == "" {
		field = contact.FieldMessage
	}
	if err := f.Edit(field, r.PostFormValue(field)); err != nil {
		renderError(w, r, http.StatusBadRequest, "unknown field", err)
		return
	}
	if s.Contact != (mw.ContactState{}) {
		s.Contact = mw.ContactState{}
		s.MarkDirty()
	}
	if !wantsFragment(r) {
		redirectHome(w, r, "contact")
		return
	}
	renderTemplate(w, r, "frag_contact_status", buildContactView(f, mw.Lang(r), s.CSRFToken, ""))
}
