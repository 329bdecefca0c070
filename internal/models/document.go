package models

import "time"

// Document is a quote, receipt or delivery note. Number is unique within Type.
type Document struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Type             DocumentType     `gorm:"size:20;not null;uniqueIndex:idx_documents_type_number,priority:1" json:"type"`
	Number           int              `gorm:"not null;uniqueIndex:idx_documents_type_number,priority:2" json:"number"`
	ClientID         uint             `gorm:"index;not null" json:"clientId"`
	Client           *Client          `json:"client,omitempty"`
	UserID           uint             `gorm:"index;not null" json:"userId"`
	CreatedBy        *User            `gorm:"foreignKey:UserID" json:"createdBy,omitempty"`
	Status           DocumentStatus   `gorm:"size:20;not null;default:DRAFT" json:"status"`
	ProductionStatus ProductionStatus `gorm:"size:20;not null;default:PENDING;index" json:"productionStatus"`
	Date             time.Time        `gorm:"not null;index" json:"date"`
	ValidUntil       *time.Time       `json:"validUntil"`
	EstimatedDate    *time.Time       `json:"estimatedDate"`
	Subtotal         float64          `gorm:"not null" json:"subtotal"`
	Total            float64          `gorm:"not null" json:"total"`
	Observations     string           `gorm:"type:text" json:"observations,omitempty"`
	Items            []DocumentItem   `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (d *Document) IsQuote() bool { return d.Type == DocumentQuote }

// DocumentItem is immutable once its document has been created.
type DocumentItem struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	DocumentID   uint             `gorm:"index;not null" json:"documentId"`
	Position     int              `gorm:"not null" json:"position"`
	ProductName  string           `gorm:"size:255;not null" json:"productName"`
	Width        int              `gorm:"not null" json:"width"`
	Height       int              `gorm:"not null" json:"height"`
	PricePerSqm  float64          `gorm:"not null" json:"pricePerSqm"`
	SquareMeters float64          `gorm:"not null" json:"squareMeters"`
	Quantity     int              `gorm:"not null" json:"quantity"`
	PriceTier    string           `gorm:"size:20;not null;default:RETAIL" json:"priceTier"`
	UnitPrice    float64          `gorm:"not null" json:"unitPrice"`
	Subtotal     float64          `gorm:"not null" json:"subtotal"`
	Area         string           `gorm:"-" json:"area"`
	Location     string           `gorm:"size:255" json:"location,omitempty"`
	Status       ProductionStatus `gorm:"size:20;not null;default:PENDING" json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// DocumentCounter holds the last number handed out per document type.
// Its row doubles as the lock that serializes allocations of one type.
type DocumentCounter struct {
	Type       DocumentType `gorm:"primaryKey;size:20"`
	LastNumber int          `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}
