// Package authn answers "who is calling?".
//
// Login exchanges a username and password for a token. ResolveIdentity
// turns the bearer token on a request back into a user, or, when
// authentication is disabled, picks the oldest user without looking at the
// token at all.
//
// Every failure is one of the exported sentinel errors so the HTTP layer
// can map them to 401 with errors.Is.
package authn
