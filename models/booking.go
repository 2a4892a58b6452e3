package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingApproved, BookingCompleted, BookingCanceled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// Transition table for constrained status changes. The admin force-update
// endpoint bypasses this table on purpose.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingApproved: true, BookingCanceled: true},
	BookingApproved:  {BookingCompleted: true},
	BookingCompleted: {},
	BookingCanceled:  {},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	m, ok := bookingTransitions[s]
	if !ok {
		return false
	}
	return m[to]
}

// Archivable reports whether a customer may soft-delete a booking in this
// status. Only terminal statuses qualify.
func (s BookingStatus) Archivable() bool {
	return s == BookingCompleted || s == BookingCanceled
}

type Booking struct {
	ID                uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Date              string        `gorm:"type:varchar(10);not null" json:"date"`
	Time              string        `gorm:"type:varchar(5);not null" json:"time"`
	Location          string        `gorm:"not null" json:"location"`
	CustomDescription string        `gorm:"type:text" json:"customDescription"`
	Status            BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	// Soft-delete fields: the record is hidden from the owning customer but
	// stays visible (and restorable) for admins.
	DeletedByUser bool       `gorm:"default:false" json:"deletedByUser"`
	UserDeletedAt *time.Time `json:"userDeletedAt"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return
}
