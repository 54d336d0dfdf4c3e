// Package endpoints implements the GRiD REST API on top of pkg/server.
//
// Every handler follows the same order: resolve the caller from the
// request context, ask the access policy, then touch storage. Errors from
// the core packages are mapped to statuses in one place (statusFor):
//
//   - authentication failures: 401
//   - policy denials: 403
//   - missing rows: 404
//   - uniqueness violations and repeated setup: 409
//   - invalid input: 400
//
// Anything else is logged and answered with a generic 500.
package endpoints
