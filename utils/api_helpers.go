package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent, so the failure can only be logged
		zap.L().Error("error encoding JSON response", zap.Error(err))
	}
}

// RespondError sends a JSON error response and records the message in the
// request's log message. If logger is nil the message goes to the global logger.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		zap.L().Warn(message, zap.Int("status", status))
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// Presigner turns a storage key into a temporary URL
type Presigner interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// PresignImageURL returns a presigned URL for a storage key. Values that are
// already http(s) URLs, and keys that fail to presign, are returned unchanged.
func PresignImageURL(ctx context.Context, p Presigner, image string) string {
	if image == "" || p == nil || strings.HasPrefix(image, "http") {
		return image
	}
	if url, err := p.PresignedURL(ctx, image); err == nil {
		return url
	}
	return image
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LatencyMiddleware logs the duration and status of each request
func LatencyMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}
