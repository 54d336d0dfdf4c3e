package model

import "time"

// Server is an inventory record. Its id is chosen by the client.
type Server struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	ServerType  string    `gorm:"column:server_type" json:"server_type"`
	OS          string    `gorm:"column:os" json:"os"`
	Hostname    string    `gorm:"column:hostname" json:"hostname"`
	TailscaleIP string    `gorm:"column:tailscale_ip" json:"tailscale_ip"`
	LocalIP     string    `gorm:"column:local_ip" json:"local_ip"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Server) TableName() string {
	return "servers"
}
