package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/util"
)

const HeaderRequestID = "X-Request-ID"

type loggerKey struct{}

func loggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(status int) {
	if !sr.wroteHeader {
		sr.status = status
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wroteHeader {
		sr.WriteHeader(http.StatusOK)
	}
	return sr.ResponseWriter.Write(b)
}

// middleware tags each request with an id, recovers panics into a 500
// envelope and writes one access log line.
func (h *Handler) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.clock.NowUtc()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		logger := h.logger.With(slog.String("request_id", requestID))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, logger))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if v := recover(); v != nil {
				err := errors.Errorf("panic: %v", v)
				logger.Error("request panicked", slog.String("error", fmt.Sprintf("%+v", err)))
				if !rec.wroteHeader {
					writeJSON(rec, logger, http.StatusInternalServerError, errorEnvelope(s.MsgInternal))
				}
			}

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", util.Since(h.clock, start)))
		}()

		next.ServeHTTP(rec, trimTrailingSlash(r))
	})
}

// trimTrailingSlash routes "/api/users/" like "/api/users". The root path is
// left alone.
func trimTrailingSlash(r *http.Request) *http.Request {
	path := r.URL.Path
	if len(path) <= 1 || !strings.HasSuffix(path, "/") {
		return r
	}

	trimmed := new(http.Request)
	*trimmed = *r
	u := *r.URL
	u.Path = strings.TrimSuffix(path, "/")
	u.RawPath = ""
	trimmed.URL = &u
	return trimmed
}
