package middleware

import (
	"net/http"

	"rescathena.com/web/internal/reveal"
)

// Reveal attaches a fresh reveal tracker per request. Crawlers get every
// section pre-revealed so indexed markup is not hidden behind an animation.
func Reveal(threshold float64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := reveal.NewTracker(threshold)
			if reveal.IsCrawler(r.UserAgent()) {
				t.RevealAll()
			}
			defer t.DetachAll()
			next.ServeHTTP(w, r.WithContext(WithTracker(r.Context(), t)))
		})
	}
}
