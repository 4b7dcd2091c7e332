package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	StatusDraft      ProductStatus = "draft"
	StatusProcessing ProductStatus = "processing"
	StatusSuccess    ProductStatus = "success"
	StatusFailed     ProductStatus = "failed"
)

type Product struct {
	ID               string          `json:"id" gorm:"type:uuid;primary_key"`
	Title            string          `json:"title" gorm:"not null"`
	MetaDescription  *string         `json:"meta_description"`
	Keywords         []string        `json:"keywords" gorm:"serializer:json"`
	ShortDescription *string         `json:"short_description"`
	Content          *string         `json:"content"`
	Images           []string        `json:"images" gorm:"serializer:json"`
	Price            *int            `json:"price"`
	PriceReference   *PriceReference `json:"price_reference" gorm:"serializer:json"`
	Categories       []CategoryRef   `json:"categories" gorm:"serializer:json"`
	WooID            *int64          `json:"woo_id"`
	PreviewURL       *string         `json:"preview_url"`
	Status           ProductStatus   `json:"status" gorm:"default:draft"`
	ErrorMessage     *string         `json:"error_message"`
	ProcessID        *string         `json:"process_id"`
	WorkflowID       *string         `json:"workflow_id"`
	Confirmed        bool            `json:"confirmed" gorm:"default:false"`
	ProcessAt        *time.Time      `json:"process_at"`
	FinishedAt       *time.Time      `json:"finished_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PriceReference is a snapshot of the market prices the product price was
// derived from.
type PriceReference struct {
	Min     int      `json:"min"`
	Max     int      `json:"max"`
	Avg     int      `json:"avg"`
	Sources []string `json:"sources"`
}

// CategoryRef is a raw reference to a commerce category, not a foreign key.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
