package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

type contextKey struct{ name string }

var sessionKey = &contextKey{"session"}

// sessionFrom pulls the authenticated session out of the request context.
// Only handlers behind authenticated() will find one.
func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionKey).(*session.Session)
	return s
}

// authenticated resolves the bearer token against the session store and
// rejects the request with a 401 envelope when it doesn't resolve.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		sess, err := h.sessions.Get(r.Context(), token)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	// Browser clients carry the token in a cookie instead.
	if c, err := r.Cookie("session"); err == nil {
		return c.Value
	}
	return ""
}

// EnableCORS is a middleware to allow the web frontend to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
