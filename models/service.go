package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service categories partition the catalog: bookings may only reference
// session services, orders may only reference product services.
const (
	ServiceCategorySession = "session"
	ServiceCategoryProduct = "product"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(20);not null;default:'session'" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
