package middleware

import "net/http"

// writeError rejects a request from middleware. htmx does not swap error
// responses, so htmx callers also get a site:error event for the page toast.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		_ = Trigger(w, map[string]any{"site:error": map[string]any{"status": code, "message": msg}})
	}
	http.Error(w, msg, code)
}
