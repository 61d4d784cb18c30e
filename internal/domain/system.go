package domain

import "time"

// SysConfig is a key-value system setting row, grouped by type.
type SysConfig struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	Sort   int    `json:"sort"`
	Type   string `gorm:"size:64;index" json:"type"`
	Name   string `gorm:"size:128;index" json:"name"`
	Value  string `gorm:"size:255" json:"value"`
	Remark string `gorm:"size:255" json:"remark"`
}

// SysOpr is an admin panel operator account.
type SysOpr struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Realname  string    `gorm:"size:128" json:"realname"`
	Mobile    string    `gorm:"size:32" json:"mobile"`
	Email     string    `gorm:"size:128" json:"email"`
	Username  string    `gorm:"size:64;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:128" json:"-"`
	Level     string    `gorm:"size:16" json:"level"`
	Status    string    `gorm:"size:16" json:"status"`
	Remark    string    `gorm:"size:255" json:"remark"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
