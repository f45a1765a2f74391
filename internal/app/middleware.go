package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/OriKozok/movie-town-server/internal/session"
)

type contextKey string

const sessionContextKey = contextKey("session")

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the bearer token against the session store. A hit
// refreshes the session's last-active timestamp and attaches the session to
// the request context; a miss leaves the request anonymous.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, found := app.sessions.Get(token)
		if !found {
			next.ServeHTTP(w, r)
			return
		}

		app.sessions.Touch(token, time.Now())

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(sessionContextKey).(session.Session); !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := r.Context().Value(sessionContextKey).(session.Session)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		if sess.Principal.Role != session.RoleUser {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := r.Context().Value(sessionContextKey).(session.Session)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		if sess.Principal.Role != session.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimit is a fixed-window per-IP limiter backed by Redis. It is a no-op
// when no Redis client is configured, and it fails open on Redis errors.
func (app *application) rateLimit(next http.Handler) http.Handler {
	if app.redis == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/60)

		count, err := app.redis.Incr(r.Context(), key).Result()
		if err != nil {
			app.logger.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			app.redis.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(app.config.limiter.requestsPerMinute) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) contextGetSession(r *http.Request) session.Session {
	sess, ok := r.Context().Value(sessionContextKey).(session.Session)
	if !ok {
		panic("missing session from context")
	}

	return sess
}
