// Package middleware holds HTTP middleware shared by the API routes.
//
// BearerAuthenticator reads "Authorization: Bearer <token>", resolves it
// through authn and stores the caller with identity.Set. Unresolvable
// requests get 401 with a JSON error body.
package middleware
