package identity

import (
	"context"
	"net"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity is the resolved caller of a request.
type Identity struct {
	User *model.User

	// AuthDisabled is set when the user was chosen by the auth-disabled
	// fallback rather than a verified token.
	AuthDisabled bool

	// RemoteIP is the client address, used for log fields.
	RemoteIP net.IP
}

// FromUser creates an Identity for a resolved user.
func FromUser(user *model.User) *Identity {
	return &Identity{User: user}
}

// WithAuthDisabled marks the identity as resolved without a token.
func (i *Identity) WithAuthDisabled(disabled bool) *Identity {
	i.AuthDisabled = disabled
	return i
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsAdmin reports whether the caller is an admin.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.User != nil && i.User.IsAdmin
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok && id != nil && id.User != nil
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
