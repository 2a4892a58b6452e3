package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OriginalURL string    `gorm:"not null" json:"originalUrl"`
	EditedURL   *string   `json:"editedUrl"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
