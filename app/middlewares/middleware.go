package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/soundstitch/storefront/app/helpers"
	"github.com/soundstitch/storefront/app/utils/sessions"
)

// CartSessionMiddleware ensures every request carries a cart key,
// minting a session cookie on first visit and placing the key in the
// request context.
func CartSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartKey, err := sessions.GetCartKey(w, r)
		if err != nil {
			log.Printf("CartSessionMiddleware: failed to resolve cart key on %s: %v", r.URL.Path, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(helpers.WithCartKey(r.Context(), cartKey)))
	})
}

func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
