package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmergencyContact is admin-managed reference data with no ownership concept.
type EmergencyContact struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Designation string    `json:"designation" gorm:"size:255"`
	Phone       string    `json:"phone" gorm:"size:32;not null"`
	Category    string    `json:"category" gorm:"size:100;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
