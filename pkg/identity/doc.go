// Package identity carries the authenticated caller through a request.
//
// The auth middleware resolves the bearer token (or the auth-disabled
// fallback) to a user and stores it here; handlers read it back.
//
//	ctx = identity.Set(ctx, identity.FromUser(user).WithRemoteIP(ip))
//
//	id, ok := identity.Get(ctx)
//	if !ok {
//	    // no authenticated caller
//	}
package identity
