package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncedPost mirrors an externally authored article. WPID is the sole
// natural key: re-syncing the same external id overwrites, never duplicates.
type SyncedPost struct {
	ID             string         `json:"id" gorm:"type:uuid;primary_key"`
	WPID           int64          `json:"wp_id" gorm:"uniqueIndex;not null"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Content        string         `json:"content"`
	Excerpt        string         `json:"excerpt"`
	FeaturedImage  *FeaturedImage `json:"featured_image" gorm:"serializer:json"`
	Status         string         `json:"status"`
	Link           string         `json:"link"`
	WPCreatedAt    time.Time      `json:"wp_created_at"`
	WPModifiedAt   time.Time      `json:"wp_modified_at"`
	AuthorID       int64          `json:"author_id"`
	SEOTitle       *string        `json:"seo_title"`
	SEODescription *string        `json:"seo_description"`
	CategoryIDs    []int64        `json:"category_ids" gorm:"serializer:json"`
	TagIDs         []int64        `json:"tag_ids" gorm:"serializer:json"`
	LastSyncedAt   time.Time      `json:"last_synced_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type FeaturedImage struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

func (p *SyncedPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
