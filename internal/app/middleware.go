package app

import (
	"net/http"
	"time"

	"github.com/gathertime/gathertime/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(recoverPanics)
	r.Use(logRequests)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		entry := log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start),
		})
		if recorder.status >= http.StatusInternalServerError {
			entry.Info("request failed")
		} else {
			entry.Debug("request served")
		}
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic while serving %s %s: %v", req.Method, req.URL.Path, r)
				rest.WriteError(w, http.StatusInternalServerError, "Internal error", "")
			}
		}()
		next.ServeHTTP(w, req)
	})
}
