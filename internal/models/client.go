package models

import "time"

const (
	DefaultCity     = "Villa María"
	DefaultProvince = "Córdoba"
)

// Client is deduplicated by phone at the application level.
type Client struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Type      ClientType `gorm:"size:20;not null;default:RETAIL" json:"type"`
	DNI       string     `gorm:"size:32" json:"dni,omitempty"`
	Phone     string     `gorm:"size:64;index;not null" json:"phone"`
	Email     string     `gorm:"size:255" json:"email,omitempty"`
	Address   string     `gorm:"size:255" json:"address,omitempty"`
	City      string     `gorm:"size:120" json:"city,omitempty"`
	Province  string     `gorm:"size:120" json:"province,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	Documents []Document `json:"documents,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	DocumentCount int64 `gorm:"-" json:"documentCount"`
}
