// Package access decides what an authenticated user may do.
//
// The model has two levels. Admins may perform every Action. Non-admins may
// only read servers they have been granted, and grants never confer write
// access. Disabling authentication changes who the caller is, not what the
// policy allows.
//
//	ok, err := policy.CanReadServer(ctx, user, "web-1")
//	if _, err := access.RequireAdmin(user); err != nil {
//	    // 403
//	}
package access
