// package server contains middleware & handlers for the playlist builder's
// local callback service
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers.
// Implementations handle specific endpoints (OAuth callbacks, health checks).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// RequestLogger logs each request's method, path, and duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
