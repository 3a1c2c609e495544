package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines what a user is allowed to do.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Status represents account standing.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User represents a registered community member or admin.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'member';index"`
	Status       Status    `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	ExpiryDate   time.Time `json:"expiry_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave flips an expired account to inactive. Runs on every save so
// membership lapses without a dedicated background job.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Expired() {
		u.Status = StatusInactive
	}
	return nil
}

// Expired reports whether the membership expiry date has passed.
func (u *User) Expired() bool {
	return !u.ExpiryDate.IsZero() && time.Now().After(u.ExpiryDate)
}

// UserRef is the denormalized owner/author expansion embedded in responses.
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Ref returns the display expansion for this user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}
