package models

const (
	RoleAdmin  = "admin"
	RoleBroker = "broker"
)

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'broker'" json:"role"` // admin, broker
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (User) TableName() string {
	return "users"
}
