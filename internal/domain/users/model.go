package users

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password string `gorm:"not null"`
	IsAdmin  bool   `gorm:"column:is_admin;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
