package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can join teams and be assigned tasks.
// Matches the users table schema.
type User struct {
	ID           string    `gorm:"primaryKey;column:id"                    json:"id"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"    json:"username"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"       json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null"           json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"              json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"              json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id to new users.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
