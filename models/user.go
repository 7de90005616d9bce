package models

import "time"

// User is an account owner. Every client and invoice row belongs to exactly
// one user and all queries are filtered by that ownership.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FirstName      string    `gorm:"size:255;not null" json:"firstName"`
	LastName       string    `gorm:"size:255" json:"lastName"`
	CompanyName    string    `gorm:"size:255" json:"companyName"`
	Email          string    `gorm:"size:255;not null;unique" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	IsGstEnabled   bool      `gorm:"default:false;not null" json:"isGstEnabled"`
	GstPercentage  float64   `gorm:"default:0;not null" json:"gstPercentage"`
	// LogoURL is a public path under the upload base; empty means no logo.
	LogoURL string `gorm:"size:512" json:"logoUrl"`
}
