package model

import "time"

type Haven struct {
	DTO
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Description string  `json:"description"`
	Capacity    int     `gorm:"default:2" json:"capacity"`
	BaseRate    float64 `json:"base_rate"`

	Images       []HavenImage  `gorm:"foreignKey:HavenID;constraint:OnDelete:CASCADE" json:"images"`
	BlockedDates []BlockedDate `gorm:"foreignKey:HavenID;constraint:OnDelete:CASCADE" json:"blocked_dates"`
}

type HavenImage struct {
	DTO
	HavenID  uint   `gorm:"not null;index" json:"haven_id"`
	URL      string `gorm:"not null" json:"url"`
	PublicID string `gorm:"size:128" json:"public_id"`
}

type BlockedDate struct {
	DTO
	HavenID uint      `gorm:"not null;index" json:"haven_id"`
	Date    time.Time `gorm:"not null" json:"date"`
	Reason  *string   `json:"reason,omitempty"`
}

type CreateHavenInput struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity" validate:"gte=1"`
	BaseRate     float64  `json:"base_rate" validate:"gte=0"`
	Images       []string `json:"images,omitempty"` // base64 payloads
	BlockedDates []string `json:"blocked_dates,omitempty"`
}

type UpdateHavenInput struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	BaseRate     *float64 `json:"base_rate,omitempty"`
	Images       []string `json:"images,omitempty"` // appended when present
	BlockedDates []string `json:"blocked_dates,omitempty"`
}
