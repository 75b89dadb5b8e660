package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "tablebot/pkg/errors"
	httputil "tablebot/pkg/http"
)

// guardedWriter stops forwarding to the client once the deadline answered
// the request.
type guardedWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	expired bool
	started bool
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.expired || g.started {
		return
	}
	g.started = true
	g.ResponseWriter.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.expired {
		return 0, http.ErrHandlerTimeout
	}
	g.started = true
	return g.ResponseWriter.Write(b)
}

// expire claims the response for the timeout path. It reports false when the
// handler already started writing.
func (g *guardedWriter) expire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expired = true
	return !g.started
}

// RequestTimeout bounds every request by timeout. The handler keeps running
// with a cancelled context, its late writes are dropped.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
			}
			if ctx.Err() != nil && gw.expire() {
				_ = httputil.WriteError(w, apperrors.Unavailable("Booking API", ctx.Err()))
			}
		})
	}
}
