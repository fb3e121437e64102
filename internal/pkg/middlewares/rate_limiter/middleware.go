package rate_limiter

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"samudra/pkg/logger"
)

const rejectBody = `{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`

// Middleware ограничивает весь роутер одним бакетом. Пути из skipPaths
// (healthcheck, metrics) лимитом не считаются.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))

			if rlimiter.Allow() {
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rlimiter.Available()))
				next.ServeHTTP(w, r)
				return
			}

			route := routeTemplate(r)
			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			rateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(rejectBody)); err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return r.URL.Path
	}
	return template
}
