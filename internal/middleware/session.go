package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wynterCG/website/internal/grid"
	"github.com/wynterCG/website/internal/lightbox"
	"github.com/wynterCG/website/internal/observability"
)

const defaultSessionCookieName = "SITE_SESSION"

// maxCookieBytes keeps the encoded cookie under the common 4KB browser limit.
const maxCookieBytes = 3800

// SessionData is the per-tab UI state carried in a signed session cookie. A
// full page load starts from fresh grid and lightbox state.
type SessionData struct {
	ID        string            `json:"id"`
	Locale    string            `json:"locale,omitempty"`
	CSRFToken string            `json:"csrf,omitempty"`
	Grid      grid.State        `json:"grid"`
	Lightbox  lightbox.Snapshot `json:"lb"`
	Contact   ContactState      `json:"contact,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

// ContactState carries the outcome of a plain form post across its redirect.
// The next page load consumes it. Field values are never stored.
type ContactState struct {
	Status    string `json:"s,omitempty"`
	Reference string `json:"r,omitempty"`
}

var (
	sessionSignKey    []byte
	sessionSecure     bool
	sessionCookieName = defaultSessionCookieName
)

// SetSessionOptions configures cookie signing. An empty key selects a
// process-ephemeral key, which is only acceptable in dev mode.
func SetSessionOptions(key string, secure bool, cookieName string) {
	if key == "" {
		sessionSignKey = make([]byte, 32)
		if _, err := rand.Read(sessionSignKey); err != nil {
			sessionSignKey = []byte("insecure-dev-key-please-set-SITE_SESSION_KEY")
		}
	} else {
		sessionSignKey = []byte(key)
	}
	sessionSecure = secure
	if name := strings.TrimSpace(cookieName); name != "" {
		sessionCookieName = name
	}
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	if sessionSignKey == nil {
		SetSessionOptions("", false, "")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// the cookie must go out with the headers
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, r, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		if !rw.Written() && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, r, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sigB, sign(payloadB)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, r *http.Request, sd *SessionData) {
	b, _ := json.Marshal(sd)
	val := base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(sign(b))
	if len(val) > maxCookieBytes {
		observability.FromContext(r.Context()).Warn("session cookie too large; dropping",
			zap.Int("bytes", len(val)))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sign(b []byte) []byte {
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	return mac.Sum(nil)
}

// helpers
func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
