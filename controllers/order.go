// controllers/order.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	DeliveryMethod  string    `json:"deliveryMethod" binding:"required,oneof=pickup delivery"`
	DeliveryAddress string    `json:"deliveryAddress"`
}

// UpdateOrderInput defines the expected JSON structure for the admin
// force-update, the unconstrained counterpart of TransitionOrderStatus
type UpdateOrderInput struct {
	DeliveryMethod  *string `json:"deliveryMethod" binding:"omitempty,oneof=pickup delivery"`
	DeliveryAddress *string `json:"deliveryAddress"`
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"paymentStatus" binding:"omitempty,oneof=unpaid paid"`
}

// BatchOrderInput carries the id list for batch operations
type BatchOrderInput struct {
	OrderIDs []uuid.UUID `json:"orderIds" binding:"required,min=1"`
}

// CreateOrder creates a new print/product order for the calling customer
func CreateOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.DeliveryMethod == models.DeliveryMethodDelivery && input.DeliveryAddress == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Delivery address is required for delivery orders")
		return
	}

	// The referenced service must exist and be a product service
	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if service.Category != models.ServiceCategoryProduct {
		utils.RespondWithError(c, http.StatusBadRequest, "Orders require a product service")
		return
	}

	order := models.Order{
		DeliveryMethod:  input.DeliveryMethod,
		DeliveryAddress: input.DeliveryAddress,
		Status:          models.OrderPending,
		PaymentStatus:   models.OrderUnpaid,
		UserID:          userUUID,
		ServiceID:       service.ID,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders returns the caller's orders, hiding archived records
func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Service").Preload("Photos").Preload("Payment").
		Where("user_id = ? AND deleted_by_user = ?", userID, false).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// CancelMyOrder lets a customer cancel their own pending order
func CancelMyOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.
		Where("id = ? AND user_id = ? AND deleted_by_user = ?", orderUUID, userID, false).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found or already deleted")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status != models.OrderPending {
		utils.RespondWithError(c, http.StatusBadRequest, "Can only cancel pending orders")
		return
	}

	order.Status = models.OrderCanceled
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order canceled successfully", "order": order})
}

// DeleteMyOrder archives a terminal order out of the customer's view
func DeleteMyOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.
		Where("id = ? AND user_id = ? AND deleted_by_user = ?", orderUUID, userID, false).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found or already deleted")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !order.Status.Archivable() {
		utils.RespondWithError(c, http.StatusBadRequest, "Can only delete delivered, picked up or canceled orders")
		return
	}

	now := time.Now()
	order.DeletedByUser = true
	order.UserDeletedAt = &now
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order removed from your view successfully",
		"deletedAt": now,
	})
}

// BatchDeleteMyOrders archives a set of the caller's orders with
// all-or-nothing validation, mirroring BatchDeleteMyBookings
func BatchDeleteMyOrders(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input BatchOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No orders selected for deletion")
		return
	}

	var invalid []gin.H
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("id IN ? AND user_id = ?", input.OrderIDs, userUUID).
			Find(&orders).Error; err != nil {
			return err
		}

		if len(orders) != len(input.OrderIDs) {
			return errBatchAccessDenied
		}

		for _, o := range orders {
			if !o.Status.Archivable() {
				invalid = append(invalid, gin.H{"id": o.ID, "status": o.Status})
			}
		}
		if len(invalid) > 0 {
			return errBatchInvalidStatus
		}

		now := time.Now()
		return tx.Model(&models.Order{}).
			Where("id IN ? AND user_id = ?", input.OrderIDs, userUUID).
			Updates(map[string]interface{}{
				"deleted_by_user": true,
				"user_deleted_at": now,
			}).Error
	})

	switch {
	case errors.Is(txErr, errBatchAccessDenied):
		utils.RespondWithError(c, http.StatusForbidden, "Some orders not found or access denied")
		return
	case errors.Is(txErr, errBatchInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Can only delete delivered, picked up or canceled orders",
			"invalidOrders": invalid,
		})
		return
	case txErr != nil:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d order(s) removed from your view successfully", len(input.OrderIDs)),
		"deletedCount": len(input.OrderIDs),
	})
}

// GetOrders returns every order for admins, archived records included
func GetOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("User").Preload("Service").Preload("Photos").Preload("Payment").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderByID retrieves a specific order for admins
func GetOrderByID(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").Preload("Service").Preload("Photos").Preload("Payment").
		First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// TransitionOrderStatus applies a status change constrained by the
// transition table
func TransitionOrderStatus(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input TransitionStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	target, err := models.ParseOrderStatus(input.Status)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
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

	if !order.Status.CanTransitionTo(target) {
		utils.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, target))
		return
	}

	order.Status = target
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// UpdateOrder is the admin force-update: any known status is accepted
// without consulting the transition table
func UpdateOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if input.DeliveryMethod != nil {
		order.DeliveryMethod = *input.DeliveryMethod
	}
	if input.DeliveryAddress != nil {
		order.DeliveryAddress = *input.DeliveryAddress
	}
	if input.Status != nil {
		status, err := models.ParseOrderStatus(*input.Status)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
			return
		}
		order.Status = status
	}
	if input.PaymentStatus != nil {
		order.PaymentStatus = *input.PaymentStatus
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// RestoreOrder reverses a customer archive, regardless of status
func RestoreOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
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

	order.DeletedByUser = false
	order.UserDeletedAt = nil
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order restored successfully", "order": order})
}

// DeleteOrder permanently removes an order with its photos and payment in a
// single transaction, so a failure cannot orphan child rows
func DeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Photo{}, "order_id = ?", orderUUID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Payment{}, "order_id = ?", orderUUID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, "id = ?", orderUUID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order and associated photos permanently deleted"})
}

// BatchDeleteOrders hard-deletes a set of orders, cascading photos and
// payments. Missing ids are not an error.
func BatchDeleteOrders(c *gin.Context) {
	var input BatchOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No orders selected for deletion")
		return
	}

	var deleted int64
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Photo{}, "order_id IN ?", input.OrderIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Payment{}, "order_id IN ?", input.OrderIDs).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, "id IN ?", input.OrderIDs)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	if txErr != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d order(s) and associated photos permanently deleted", deleted),
		"deletedCount": deleted,
	})
}

// BatchRestoreOrders restores a set of archived orders with the same partial
// success contract as the admin batch delete
func BatchRestoreOrders(c *gin.Context) {
	var input BatchOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No orders selected for restore")
		return
	}

	result := config.DB.Model(&models.Order{}).
		Where("id IN ?", input.OrderIDs).
		Updates(map[string]interface{}{
			"deleted_by_user": false,
			"user_deleted_at": nil,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d order(s) restored", result.RowsAffected),
		"restoredCount": result.RowsAffected,
	})
}
