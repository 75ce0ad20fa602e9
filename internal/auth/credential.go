package auth

import (
	"context"
	"net/http"
	"strings"
)

// CookieName is the fixed key the login flow stores the token under.
const CookieName = "token"

// Credential is the raw token sent to the task service as the Authorization header.
type Credential string

func (c Credential) Empty() bool { return c == "" }

type ctxKey struct{}

func WithCredential(ctx context.Context, c Credential) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the credential stored by Middleware, or "" if none.
func FromContext(ctx context.Context) Credential {
	c, _ := ctx.Value(ctxKey{}).(Credential)
	return c
}

// FromRequest prefers the Authorization header and falls back to the token cookie.
func FromRequest(r *http.Request) Credential {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		return Credential(h)
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return Credential(cookie.Value)
	}
	return ""
}

// Middleware puts the request's credential into its context. It never rejects a request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithCredential(r.Context(), FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
