package model

// AccessGrant lets a non-admin user read one server. At most one grant
// exists per (user, server) pair and grants are removed with either side.
type AccessGrant struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID   string `gorm:"column:user_id" json:"user_id"`
	ServerID string `gorm:"column:server_id" json:"server_id"`
}

func (AccessGrant) TableName() string {
	return "user_server_access"
}

// SetupState is the single-row marker written when the first user is
// created. Its fixed primary key makes "initialize once" a plain insert.
type SetupState struct {
	ID int `gorm:"column:id;primaryKey"`
}

// SetupStateID is the only valid SetupState primary key.
const SetupStateID = 1

func (SetupState) TableName() string {
	return "setup_state"
}
