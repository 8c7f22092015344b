// Package middleware defines HTTP middlewares for the diagnostics server.
package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

func Logging(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			l.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("diagnostics request")
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Recover basic panic recovery middleware
func Recover(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error().Interface("err", rec).Msg("panic recovered")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
