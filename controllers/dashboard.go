// controllers/dashboard.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
	ArchivedBookings int64            `json:"archivedBookings"`
	ArchivedOrders   int64            `json:"archivedOrders"`
	MonthlyRevenue   float64          `json:"monthlyRevenue"`
	TotalCustomers   int64            `json:"totalCustomers"`
	RecentBookings   []RecentBooking  `json:"recentBookings"`
}

type RecentBooking struct {
	Customer string `json:"customer"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Created  string `json:"created"` // e.g. "Today", "3 days ago"
}

func GetDashboardOverview(c *gin.Context) {
	overview := DashboardOverview{
		BookingsByStatus: map[string]int64{},
		OrdersByStatus:   map[string]int64{},
	}

	bookingStatuses := []models.BookingStatus{
		models.BookingPending, models.BookingApproved,
		models.BookingCompleted, models.BookingCanceled,
	}
	for _, status := range bookingStatuses {
		var count int64
		config.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&count)
		overview.BookingsByStatus[string(status)] = count
	}

	orderStatuses := []models.OrderStatus{
		models.OrderPending, models.OrderEditing, models.OrderReady,
		models.OrderPrinted, models.OrderDelivered, models.OrderPickedUp,
		models.OrderCanceled,
	}
	for _, status := range orderStatuses {
		var count int64
		config.DB.Model(&models.Order{}).Where("status = ?", status).Count(&count)
		overview.OrdersByStatus[string(status)] = count
	}

	config.DB.Model(&models.Booking{}).Where("deleted_by_user = ?", true).Count(&overview.ArchivedBookings)
	config.DB.Model(&models.Order{}).Where("deleted_by_user = ?", true).Count(&overview.ArchivedOrders)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&overview.TotalCustomers)

	// This month's settled payments
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var revenue *float64
	if err := config.DB.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ?", models.PaymentCompleted, firstOfMonth).
		Select("SUM(amount)").
		Scan(&revenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	if revenue != nil {
		overview.MonthlyRevenue = *revenue
	}

	var recent []models.Booking
	if err := config.DB.Preload("User").Preload("Service").
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	for _, b := range recent {
		rb := RecentBooking{
			Date:    b.Date,
			Status:  string(b.Status),
			Created: relativeDayLabel(b.CreatedAt, now),
		}
		if b.User != nil {
			rb.Customer = b.User.Name
		}
		if b.Service != nil {
			rb.Service = b.Service.Name
		}
		overview.RecentBookings = append(overview.RecentBookings, rb)
	}

	c.JSON(http.StatusOK, overview)
}

func relativeDayLabel(t, now time.Time) string {
	switch days := utils.DaysBetween(t, now); days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
