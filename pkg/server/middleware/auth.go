package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/identity"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

var bearerRegex = regexp.MustCompile(`(?i)^Bearer\s+(\S+)$`)

// IdentityResolver maps a bearer token to a user.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, bearer string) (*model.User, error)
	AuthDisabled() bool
}

// BearerAuthenticator is middleware that resolves the caller of every
// request it wraps and rejects requests it cannot resolve.
type BearerAuthenticator struct {
	resolver IdentityResolver
	logger   *zap.Logger
}

// NewBearerAuthenticator creates a new bearer token middleware
func NewBearerAuthenticator(resolver IdentityResolver, logger *zap.Logger) *BearerAuthenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BearerAuthenticator{resolver: resolver, logger: logger}
}

// BearerToken extracts the token from an Authorization header. A missing or
// non-bearer header yields "".
func BearerToken(header string) string {
	m := bearerRegex.FindStringSubmatch(header)
	if len(m) != 2 {
		return ""
	}
	return m[1]
}

// Middleware returns an HTTP middleware that stores the resolved identity in
// the request context.
func (b *BearerAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := b.resolver.ResolveIdentity(r.Context(), BearerToken(r.Header.Get("Authorization")))
		if err != nil {
			if authn.IsAuthError(err) {
				b.logger.Debug("request not authenticated",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, authn.ErrorMessage(err))
				return
			}
			b.logger.Error("identity resolution failed", zap.String("path", r.URL.Path), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		id := identity.FromUser(user).
			WithAuthDisabled(b.resolver.AuthDisabled()).
			WithRemoteIP(remoteIP(r))
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
