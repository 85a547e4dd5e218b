package middleware

import (
	"context"
	"net/http"
	"strings"

	"scholarmarket/internal/infra/identity"
)

// IdentityVerifier validates a bearer credential and yields the caller.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

type callerKey string

const (
	callerEmailKey callerKey = "caller_email"
	callerNameKey  callerKey = "caller_name"
)

// Auth rejects requests without a valid Bearer token and stores the verified
// caller identity in the request context.
func Auth(verifier IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			caller, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), callerEmailKey, caller.Email)
			ctx = context.WithValue(ctx, callerNameKey, caller.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerEmailFromContext returns the verified caller email, or "" when the
// request did not pass through Auth.
func CallerEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(callerEmailKey).(string); ok {
		return v
	}
	return ""
}

func CallerNameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(callerNameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithCaller is a test hook for handlers that read the caller from
// the context.
func ContextWithCaller(ctx context.Context, email, name string) context.Context {
	if strings.TrimSpace(email) == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, callerEmailKey, email)
	return context.WithValue(ctx, callerNameKey, name)
}
