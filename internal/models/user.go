package models

import "time"

// User creates documents. The app runs with a single implicit administrator.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      Role      `gorm:"size:20;not null;default:ADMIN" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	DefaultUserEmail = "admin@azuldeco.com"
	DefaultUserName  = "Administrador"
)
