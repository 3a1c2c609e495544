package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateType classifies a published update.
type UpdateType string

const (
	UpdateTypeNews         UpdateType = "news"
	UpdateTypeAnnouncement UpdateType = "announcement"
	UpdateTypeBlogs        UpdateType = "blogs"
	UpdateTypeGallery      UpdateType = "gallery"
	UpdateTypeNotices      UpdateType = "notices"
	UpdateTypeWorkshop     UpdateType = "workshop"
)

// ValidUpdateType reports whether t is one of the known update types.
func ValidUpdateType(t UpdateType) bool {
	switch t {
	case UpdateTypeNews, UpdateTypeAnnouncement, UpdateTypeBlogs,
		UpdateTypeGallery, UpdateTypeNotices, UpdateTypeWorkshop:
		return true
	}
	return false
}

// Update is a published site update (news, announcement, blog post, ...).
// RedirectURL is only meaningful for the blogs type; every other type stores
// it empty.
type Update struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Type        UpdateType     `json:"type" gorm:"type:varchar(20);not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Content     string         `json:"content" gorm:"type:text"`
	ImageURL    string         `json:"image_url,omitempty" gorm:"size:512"`
	RedirectURL string         `json:"redirect_url,omitempty" gorm:"size:512"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *Update) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
