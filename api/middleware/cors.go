package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Local frontend dev servers. Production origins come in through
// extraOrigins from config.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS applies the API's allowed origin policy.
func CORS(extraOrigins ...string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   append(append([]string{}, defaultCORSOrigins...), extraOrigins...),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	return cors.New(opts).Handler
}
