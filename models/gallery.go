package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery holds the public showcase photos on the studio landing page.
type Gallery struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `gorm:"not null" json:"imageUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Gallery) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}
