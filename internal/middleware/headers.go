package middleware

import "net/http"

var apiHeaders = [][2]string{
	// /score changes after every submission.
	{"Cache-Control", "no-store, no-cache, must-revalidate, max-age=0"},
	{"Pragma", "no-cache"},
	{"Expires", "0"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// APIHeaders sets the response headers shared by every quiz endpoint.
func APIHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range apiHeaders {
			h.Set(kv[0], kv[1])
		}
		next.ServeHTTP(w, r)
	})
}
