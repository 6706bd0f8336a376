package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a referenced collaborator: authentication and session handling
// live upstream, this service only needs the row for ownership and audit.
type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Email        string `gorm:"column:email;uniqueIndex;size:191" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:191" json:"-"`
	Role         string `gorm:"column:role;size:16;index" json:"role"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
