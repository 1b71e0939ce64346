package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"dinas-portal/internal/handler/http/respond"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext returns the subject of the verified token.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(ctxUser).(string)
	return user, ok
}

// Authz returns middleware that requires a Bearer token with the admin role.
// A nil issuer disables the check.
func Authz(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if issuer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			defer func() { recordAuthzCheckDuration(time.Since(start)) }()

			claims, err := issuer.verify(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="dinas-portal"`)
				respond.SafeError(w, http.StatusUnauthorized, err)
				return
			}
			if claims.Role != RoleAdmin {
				recordForbiddenAttempt(claims.Role, r.Method)
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}
			ctx := context.WithValue(r.Context(), ctxUser, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (i *Issuer) verify(header string) (*Claims, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	return i.Parse(strings.TrimSpace(token))
}
