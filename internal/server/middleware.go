package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) middleware() alice.Chain {
	return alice.New(s.logRequests, s.recoverPanic)
}

// logRequests tags each request with an ID, echoes it in the response
// header and logs one line when the handler returns.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := withRequestID(r.Context(), r.Header.Get(RequestIDHeader))
		r = r.WithContext(ctx)
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		entry := s.log.WithFields(logrus.Fields{
			"request_id":  id,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case rec.status >= 500:
			entry.Error("request failed")
		case rec.status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	})
}

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				s.log.WithFields(logrus.Fields{
					"request_id": RequestID(r.Context()),
					"panic":      err,
					"path":       r.URL.Path,
					"stack":      string(stack),
				}).Error("handler panic")
				writeError(w, ErrInternalServer, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
