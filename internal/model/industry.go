package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Industry represents a member-owned business listing.
type Industry struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address" gorm:"size:512"`
	Phone       string         `json:"phone" gorm:"size:32"`
	Website     string         `json:"website" gorm:"size:512"`
	Vacancy     Vacancy        `json:"-" gorm:"embedded;embeddedPrefix:vacancy_"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Products []Product `json:"products" gorm:"foreignKey:IndustryID;constraint:OnDelete:CASCADE"`
	Owner    *User     `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Industry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Vacancy is the job-opening sub-object carried by an industry. It is only
// surfaced to clients while Open is true.
type Vacancy struct {
	Open   bool            `json:"open"`
	Title  string          `json:"title" gorm:"size:255"`
	Count  int             `json:"count"`
	Salary decimal.Decimal `json:"salary" gorm:"type:decimal(20,2);default:0"`
}

// Product is a good or service offered by an industry.
type Product struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	IndustryID uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	Name       string          `json:"name" gorm:"size:255;not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Images     ImageList       `json:"images" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ImageList stores image URLs as a JSON array in a text column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported image list type %T", value)
	}
}
