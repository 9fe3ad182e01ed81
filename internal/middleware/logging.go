package middleware

import (
	"net/http"
	"time"

	"dog-match/internal/platform/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.size += size
	return size, err
}

// RequestLogger loguea cada request al terminar.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			if rec.statusCode == 0 {
				rec.statusCode = http.StatusOK
			}
			duration := time.Since(start)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.statusCode,
				"bytes":       rec.size,
				"duration_ms": duration.Milliseconds(),
			}
			if duration > 100*time.Millisecond {
				fields["slow"] = true
			}

			switch {
			case rec.statusCode >= 500:
				fields["error_type"] = "server_error"
				log.Error("server error", fields)
			case rec.statusCode >= 400:
				fields["error_type"] = "client_error"
				log.Warn("client error", fields)
			default:
				log.Info("request completed", fields)
			}
		})
	}
}
