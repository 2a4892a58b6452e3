package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderEditing   OrderStatus = "editing"
	OrderReady     OrderStatus = "ready"
	OrderPrinted   OrderStatus = "printed"
	OrderDelivered OrderStatus = "delivered"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderCanceled  OrderStatus = "canceled"
)

const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
)

const (
	OrderUnpaid = "unpaid"
	OrderPaid   = "paid"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderEditing, OrderReady, OrderPrinted,
		OrderDelivered, OrderPickedUp, OrderCanceled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown order status: %s", s)
	}
}

var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderEditing: true, OrderCanceled: true},
	OrderEditing:   {OrderReady: true},
	OrderReady:     {OrderPrinted: true},
	OrderPrinted:   {OrderDelivered: true, OrderPickedUp: true},
	OrderDelivered: {},
	OrderPickedUp:  {},
	OrderCanceled:  {},
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	m, ok := orderTransitions[s]
	if !ok {
		return false
	}
	return m[to]
}

// Archivable reports whether a customer may soft-delete an order in this
// status.
func (s OrderStatus) Archivable() bool {
	return s == OrderDelivered || s == OrderPickedUp || s == OrderCanceled
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	DeliveryMethod  string      `gorm:"type:varchar(20);not null;default:'pickup'" json:"deliveryMethod"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Set by admins by hand, not derived from the Payment record.
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'unpaid'" json:"paymentStatus"`

	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	DeletedByUser bool       `gorm:"default:false" json:"deletedByUser"`
	UserDeletedAt *time.Time `json:"userDeletedAt"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Photos  []Photo  `gorm:"foreignKey:OrderID" json:"photos,omitempty"`
	Payment *Payment `gorm:"foreignKey:OrderID" json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = OrderUnpaid
	}
	return
}
