package models

import "time"

// Category and Brand use the commerce platform's id as the local primary
// key. Both are replaced wholesale on each refresh pass via upsert.

type Category struct {
	ID        string    `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Brand struct {
	ID        string    `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updated_at"`
}
