package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/nav"
	"github.com/tpo-portal/tpo-ui-api/internal/session"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GuardScreen authorizes a route the same way the dispatcher authorizes a
// screen transition. A denied request gets a 401 or 403 plus the redirect
// target the UI should follow, so route guards and in-process navigation
// can never disagree.
func GuardScreen(store *session.Store, screen nav.ScreenID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := nav.Authorize(screen, store.Session())
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			status := http.StatusForbidden
			errCode := "forbidden"
			if decision.Reason == nav.ReasonLoginRequired {
				status = http.StatusUnauthorized
				errCode = "authentication_required"
			}
			w.Header().Set("X-Redirect-Screen", string(decision.Target))
			WriteError(w, ErrorParams{
				Code:    status,
				ErrCode: errCode,
				Err:     errors.New("screen " + string(screen) + " is not available, go to " + string(decision.Target)),
			})
		})
	}
}

// Chain applies middlewares right to left, so the first listed runs first.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
