package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const actorKey ctxKey = "actor"

// SystemActor is recorded when the API runs without authentication.
const SystemActor = "system"

type Middleware struct {
	secret []byte
}

// New returns a middleware; an empty secret disables authentication.
func New(secret []byte) Middleware {
	return Middleware{secret: secret}
}

func (m Middleware) Enabled() bool {
	return len(m.secret) > 0
}

func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			unauthorized(w, "missing token")
			return
		}

		tokenString := strings.TrimPrefix(h, "Bearer ")
		actor, err := ParseToken(m.secret, tokenString)
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		next(w, r.WithContext(WithActor(r.Context(), actor)))
	}
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext falls back to SystemActor.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok && v != "" {
		return v
	}
	return SystemActor
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":  msg,
		"status": http.StatusUnauthorized,
	})
}
