package models

import "time"

// FabricType is a catalog fabric priced per square meter for each tier.
type FabricType struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Code          string        `gorm:"size:64;uniqueIndex;not null" json:"code"`
	PricePerSqm   float64       `gorm:"not null" json:"pricePerSqm"`
	ResellerPrice float64       `gorm:"not null" json:"resellerPrice"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	IsActive      bool          `gorm:"not null" json:"isActive"`
	Colors        []FabricColor `gorm:"constraint:OnDelete:CASCADE" json:"colors"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type FabricColor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FabricTypeID uint      `gorm:"not null;uniqueIndex:idx_fabric_colors_type_name,priority:1" json:"fabricTypeId"`
	Name         string    `gorm:"size:120;not null;uniqueIndex:idx_fabric_colors_type_name,priority:2" json:"name"`
	HexCode      string    `gorm:"size:16" json:"hexCode,omitempty"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SystemColor is a mechanism color, independent of any fabric.
type SystemColor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	HexCode   string    `gorm:"size:16;not null" json:"hexCode"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
