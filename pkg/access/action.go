package access

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform kebab -text -output action.gen.go

// Action is an operation a user attempts. Only ActionRead is ever granted to
// non-admins, and only per server.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionManageGrants
	ActionManageUsers
	ActionUploadBranding
)
