package models

import (
	"strings"
	"time"

	"cartroyal/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	UUID         string         `gorm:"primaryKey;size:64" json:"uuid"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Phone        string         `gorm:"size:32" json:"phone"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index;default:'user'" json:"role"` // user | moderator | admin
	FCMToken     string         `gorm:"size:512" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }

// IsElevated reports whether the user may read other users' records.
func (u *User) IsElevated() bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleModerator
}

// FullName falls back to the email local part when no name was captured.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}
