package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"assetserver/src/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, stores a request scoped logger
// in the context and logs the outcome.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			ctx := utils.WithLogger(r.Context(), entry)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"status":  ww.Status(),
				"bytes":   ww.BytesWritten(),
				"latency": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}

// Recoverer turns a panic into a 500 Server error response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := fmt.Errorf("%v", rec)
			utils.LoggerFromContext(r.Context()).
				WithField("stack", string(debug.Stack())).
				WithError(err).
				Error("panic recovered")
			utils.WriteError(w, err)
		}()
		next.ServeHTTP(w, r)
	})
}
