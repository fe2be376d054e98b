/*
Package logging builds the zap logger and the HTTP access-log middleware.

PURPOSE:
  One place that turns the [logging] config section into a *zap.Logger, and
  a chi-compatible middleware that writes one structured line per request.

LEVELS:
  debug, info, warn, error (case-insensitive). The returned AtomicLevel can
  be changed at runtime without rebuilding the logger.

ACCESS LOG FIELDS:
  method, path, status, bytes, duration, request_id

SEE ALSO:
  - config/config.go:   LoggingConfig
  - api/server.go:      Middleware stack
*/
package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger at the given level. Development mode switches to the
// console encoder with caller and stack traces on warnings.
func New(level string, development bool) (*zap.Logger, zap.AtomicLevel, error) {
	atomic, err := ParseLevel(level)
	if err != nil {
		return nil, atomic, err
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = atomic

	logger, err := config.Build()
	if err != nil {
		return nil, atomic, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, atomic, nil
}

// ParseLevel converts a level name into an AtomicLevel. Empty means info.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	if level == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return atomic, nil
}

// RequestLogger logs every request after it completes. Server errors are
// logged at error level, client errors at warn, the rest at info.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				}
				switch {
				case status >= 500:
					logger.Error("request", fields...)
				case status >= 400:
					logger.Warn("request", fields...)
				default:
					logger.Info("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
