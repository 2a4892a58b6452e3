// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records every session-reminder SMS attempt so bookings are
// never reminded twice and failures stay auditable.
type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID    uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms
	Status       string    `gorm:"type:varchar(20)" json:"status"`  // sent, failed, skipped
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
