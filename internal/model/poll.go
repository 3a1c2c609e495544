package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Poll is a time-boxed question with a fixed option list.
type Poll struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Question    string    `json:"question" gorm:"size:512;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Options   []PollOption `json:"options" gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
	CreatedBy *User        `json:"-" gorm:"foreignKey:CreatedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the voting window has closed.
func (p *Poll) Expired() bool {
	return time.Now().After(p.ExpiresAt)
}

// OptionAt returns the option at the given 0-based position, or nil when out
// of range.
func (p *Poll) OptionAt(index int) *PollOption {
	for i := range p.Options {
		if p.Options[i].Position == index {
			return &p.Options[i]
		}
	}
	return nil
}

// TotalVotes sums the vote counters across all options.
func (p *Poll) TotalVotes() int64 {
	var total int64
	for i := range p.Options {
		total += p.Options[i].Votes
	}
	return total
}

// PollOption is one selectable answer. Position is the stable 0-based index
// clients vote by.
type PollOption struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PollID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Position  int       `json:"position" gorm:"not null"`
	Text      string    `json:"text" gorm:"size:255;not null"`
	Votes     int64     `json:"votes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (o *PollOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// PollVote records that a user has voted on a poll. The composite unique
// index is what makes the one-vote-per-user rule atomic at the store level.
type PollVote struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PollID    uuid.UUID `json:"poll_id" gorm:"type:char(36);not null;uniqueIndex:idx_poll_voter"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_poll_voter"`
	OptionID  uuid.UUID `json:"option_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}
