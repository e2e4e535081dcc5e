package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		if is {
			ctx = contextWithHTMXInfo(ctx, HTMXInfo{
				Trigger:     r.Header.Get("HX-Trigger"),
				TriggerName: r.Header.Get("HX-Trigger-Name"),
				Target:      r.Header.Get("HX-Target"),
				Boosted:     r.Header.Get("HX-Boosted") == "true",
			})
		}
		// fragments and full pages share URLs
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Trigger merges events into the HX-Trigger response header. It must be called
// before the response is written.
func Trigger(w http.ResponseWriter, events map[string]any) error {
	if len(events) == 0 {
		return nil
	}
	merged := map[string]any{}
	if existing := w.Header().Get("HX-Trigger"); existing != "" {
		_ = json.Unmarshal([]byte(existing), &merged)
	}
	for name, payload := range events {
		merged[name] = payload
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(b))
	return nil
}
