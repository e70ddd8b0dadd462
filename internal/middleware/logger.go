package middleware

import (
	"log"
	"net/http"
	"time"
)

// RequestLogger logs one line per request. Mounted only when request logging
// is enabled in the configuration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📝 %s - %s %s from %s",
			time.Now().UTC().Format(time.RFC3339), r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
