package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackCategory classifies a feedback question.
type FeedbackCategory string

const (
	FeedbackCategoryGeneral     FeedbackCategory = "general"
	FeedbackCategoryEvents      FeedbackCategory = "events"
	FeedbackCategoryFacilities  FeedbackCategory = "facilities"
	FeedbackCategorySuggestions FeedbackCategory = "suggestions"
)

// ValidFeedbackCategory reports whether c is a known category.
func ValidFeedbackCategory(c FeedbackCategory) bool {
	switch c {
	case FeedbackCategoryGeneral, FeedbackCategoryEvents,
		FeedbackCategoryFacilities, FeedbackCategorySuggestions:
		return true
	}
	return false
}

// FeedbackQuestion is a prompt members may answer once each. Questions with
// existing responses are never hard-deleted, only deactivated.
type FeedbackQuestion struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Question  string           `json:"question" gorm:"size:512;not null"`
	Category  FeedbackCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	IsActive  bool             `json:"is_active" gorm:"not null;default:true;index"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (q *FeedbackQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Open reports whether the question currently accepts responses.
func (q *FeedbackQuestion) Open() bool {
	if !q.IsActive {
		return false
	}
	return q.ExpiresAt == nil || time.Now().Before(*q.ExpiresAt)
}

// ResponseStatus tracks admin review of a feedback response.
type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusReviewed ResponseStatus = "reviewed"
	ResponseStatusResolved ResponseStatus = "resolved"
)

// ValidResponseStatus reports whether s is a known review status.
func ValidResponseStatus(s ResponseStatus) bool {
	switch s {
	case ResponseStatusPending, ResponseStatusReviewed, ResponseStatusResolved:
		return true
	}
	return false
}

// FeedbackResponse is one member's answer to a question. The composite unique
// index enforces one response per (question, user) pair.
type FeedbackResponse struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	QuestionID uuid.UUID      `json:"question_id" gorm:"type:char(36);not null;uniqueIndex:idx_question_responder"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_question_responder"`
	Answer     string         `json:"answer" gorm:"type:text;not null"`
	Status     ResponseStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Question *FeedbackQuestion `json:"-" gorm:"foreignKey:QuestionID"`
	User     *User             `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *FeedbackResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
