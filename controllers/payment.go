// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentInput defines the expected JSON structure for creating a payment
type CreatePaymentInput struct {
	Amount  float64   `json:"amount" binding:"required,gt=0"`
	Method  string    `json:"method" binding:"required,oneof=cash gcash"`
	OrderID uuid.UUID `json:"orderId" binding:"required"`
}

// UpdatePaymentStatusInput carries the new status for an existing payment
type UpdatePaymentStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}

// CreatePayment records a customer payment for their own order. One payment
// per order; the status stays pending until an admin settles it.
func CreatePayment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", input.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.UserID.String() != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to pay for this order")
		return
	}

	var existing models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Payment already exists for this order")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	payment := models.Payment{
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    models.PaymentPending,
		Reference: "PAY-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		OrderID:   order.ID,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment created", "payment": payment})
}

// GetMyPaymentByOrder returns the caller's payment for one of their orders
func GetMyPaymentByOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	orderUUID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.UserID.String() != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to view this payment")
		return
	}

	var payment models.Payment
	if err := config.DB.Where("order_id = ?", orderUUID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No payment found for this order")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetPayments retrieves all payments for admins
func GetPayments(c *gin.Context) {
	var payments []models.Payment
	if err := config.DB.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// UpdatePaymentStatus lets an admin settle or fail a payment
func UpdatePaymentStatus(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var input UpdatePaymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, "id = ?", paymentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	payment.Status = input.Status
	if err := config.DB.Save(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "payment": payment})
}
