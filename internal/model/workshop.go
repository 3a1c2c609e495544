package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workshop is a capacity-limited event members can register for.
type Workshop struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Venue       string         `json:"venue" gorm:"size:255"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Capacity    int            `json:"capacity" gorm:"not null;default:0"`
	ImageURL    string         `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (w *Workshop) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WorkshopRegistration records an attendee. The composite unique index
// enforces one registration per user per workshop.
type WorkshopRegistration struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	WorkshopID uuid.UUID `json:"workshop_id" gorm:"type:char(36);not null;uniqueIndex:idx_workshop_attendee"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_workshop_attendee"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}
