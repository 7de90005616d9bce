package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// InvoiceItems stores the ordered line items as a JSONB column. Items are an
// embedded list, not a normalized table, so their order survives round-trips.
type InvoiceItems []InvoiceItem

// Value serializes the items for storage.
func (items InvoiceItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan reads the JSONB column back into the slice.
func (items *InvoiceItems) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, items)
}

// Invoice is a bill issued by a user to one of their clients.
//
// InvoiceNumber is unique per (user, number) via the composite index; the
// numbering race between concurrent creates by the same owner is resolved by
// this constraint plus a retry, not by locking. Status persists only
// draft/pending/paid; overdue is derived at read time, though legacy rows
// imported before that rule may still carry it.
type Invoice struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	UserID        uint         `gorm:"not null;uniqueIndex:idx_user_invoice_number" json:"userId"`
	ClientID      uint         `gorm:"index;not null" json:"clientId"`
	Client        Client       `gorm:"foreignKey:ClientID" json:"client"`
	InvoiceNumber string       `gorm:"size:64;not null;uniqueIndex:idx_user_invoice_number" json:"invoiceNumber"`
	Items         InvoiceItems `gorm:"type:jsonb;not null" json:"items"`
	// TotalAmount is always recomputed from Items, never edited directly.
	TotalAmount   float64   `gorm:"not null" json:"totalAmount"`
	Status        string    `gorm:"size:16;not null;default:'draft'" json:"status"`
	DueDate       time.Time `gorm:"not null" json:"dueDate"`
	PaymentMethod string    `gorm:"size:32;not null;default:'-'" json:"paymentMethod"`
}
