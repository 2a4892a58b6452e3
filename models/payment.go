package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash  = "cash"
	PaymentMethodGcash = "gcash"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    string    `gorm:"type:varchar(20);not null" json:"method"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference string    `gorm:"uniqueIndex;not null" json:"reference"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return
}
