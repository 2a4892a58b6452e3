// controllers/booking.go
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

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	Date              string    `json:"date" binding:"required"`
	Time              string    `json:"time" binding:"required"`
	Location          string    `json:"location" binding:"required"`
	ServiceID         uuid.UUID `json:"serviceId" binding:"required"`
	CustomDescription string    `json:"customDescription"`
}

// UpdateBookingInput defines the expected JSON structure for the admin
// force-update. Status values are checked against the known vocabulary but
// NOT against the transition table: this endpoint is the correction hatch.
type UpdateBookingInput struct {
	Date              *string `json:"date"`
	Time              *string `json:"time"`
	Location          *string `json:"location"`
	CustomDescription *string `json:"customDescription"`
	Status            *string `json:"status"`
}

// TransitionStatusInput carries the target status for a constrained change
type TransitionStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// BatchBookingInput carries the id list for batch operations
type BatchBookingInput struct {
	BookingIDs []uuid.UUID `json:"bookingIds" binding:"required,min=1"`
}

// CreateBooking creates a new session booking for the calling customer
func CreateBooking(c *gin.Context) {
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

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := time.Parse(utils.BookingDateLayout, input.Date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(utils.BookingTimeLayout, input.Time); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
		return
	}

	// The referenced service must exist and be a session service
	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if service.Category != models.ServiceCategorySession {
		utils.RespondWithError(c, http.StatusBadRequest, "Bookings require a session service")
		return
	}

	booking := models.Booking{
		Date:              input.Date,
		Time:              input.Time,
		Location:          input.Location,
		CustomDescription: input.CustomDescription,
		Status:            models.BookingPending,
		UserID:            userUUID,
		ServiceID:         service.ID,
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings returns the caller's bookings, hiding archived records
func GetMyBookings(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var bookings []models.Booking
	if err := config.DB.Preload("Service").
		Where("user_id = ? AND deleted_by_user = ?", userID, false).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelMyBooking lets a customer cancel their own pending booking
func CancelMyBooking(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.
		Where("id = ? AND user_id = ? AND deleted_by_user = ?", bookingUUID, userID, false).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found or already deleted")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.Status != models.BookingPending {
		utils.RespondWithError(c, http.StatusBadRequest, "Can only cancel pending bookings")
		return
	}

	booking.Status = models.BookingCanceled
	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking canceled successfully", "booking": booking})
}

// DeleteMyBooking archives a terminal booking: it disappears from the
// customer's view but stays visible to admins
func DeleteMyBooking(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.
		Where("id = ? AND user_id = ? AND deleted_by_user = ?", bookingUUID, userID, false).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found or already deleted")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !booking.Status.Archivable() {
		utils.RespondWithError(c, http.StatusBadRequest, "Can only delete completed or canceled bookings")
		return
	}

	now := time.Now()
	booking.DeletedByUser = true
	booking.UserDeletedAt = &now
	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking removed from your view successfully",
		"deletedAt": now,
	})
}

// BatchDeleteMyBookings archives a set of the caller's bookings with
// all-or-nothing validation: every id must belong to the caller and every
// booking must be in an archivable status, otherwise nothing is changed.
func BatchDeleteMyBookings(c *gin.Context) {
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

	var input BatchBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No bookings selected for deletion")
		return
	}

	// Validate and update in one transaction so a concurrent hard delete
	// cannot slip between the ownership check and the bulk write.
	var invalid []gin.H
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var bookings []models.Booking
		if err := tx.Where("id IN ? AND user_id = ?", input.BookingIDs, userUUID).
			Find(&bookings).Error; err != nil {
			return err
		}

		if len(bookings) != len(input.BookingIDs) {
			return errBatchAccessDenied
		}

		for _, b := range bookings {
			if !b.Status.Archivable() {
				invalid = append(invalid, gin.H{"id": b.ID, "status": b.Status})
			}
		}
		if len(invalid) > 0 {
			return errBatchInvalidStatus
		}

		now := time.Now()
		return tx.Model(&models.Booking{}).
			Where("id IN ? AND user_id = ?", input.BookingIDs, userUUID).
			Updates(map[string]interface{}{
				"deleted_by_user": true,
				"user_deleted_at": now,
			}).Error
	})

	switch {
	case errors.Is(txErr, errBatchAccessDenied):
		utils.RespondWithError(c, http.StatusForbidden, "Some bookings not found or access denied")
		return
	case errors.Is(txErr, errBatchInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Can only delete completed or canceled bookings",
			"invalidBookings": invalid,
		})
		return
	case txErr != nil:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d booking(s) removed from your view successfully", len(input.BookingIDs)),
		"deletedCount": len(input.BookingIDs),
	})
}

// GetBookings returns every booking for admins, archived records included
func GetBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := config.DB.Preload("User").Preload("Service").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID retrieves a specific booking for admins
func GetBookingByID(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("User").Preload("Service").
		First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// TransitionBookingStatus applies a status change constrained by the
// transition table
func TransitionBookingStatus(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input TransitionStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	target, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !booking.Status.CanTransitionTo(target) {
		utils.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Cannot change booking status from %s to %s", booking.Status, target))
		return
	}

	booking.Status = target
	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated", "booking": booking})
}

// UpdateBooking is the admin force-update: any known status is accepted
// without consulting the transition table
func UpdateBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Date != nil {
		if _, err := time.Parse(utils.BookingDateLayout, *input.Date); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		booking.Date = *input.Date
	}
	if input.Time != nil {
		if _, err := time.Parse(utils.BookingTimeLayout, *input.Time); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
			return
		}
		booking.Time = *input.Time
	}
	if input.Location != nil {
		booking.Location = *input.Location
	}
	if input.CustomDescription != nil {
		booking.CustomDescription = *input.CustomDescription
	}
	if input.Status != nil {
		status, err := models.ParseBookingStatus(*input.Status)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status value")
			return
		}
		booking.Status = status
	}

	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// RestoreBooking reverses a customer archive, regardless of status
func RestoreBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	booking.DeletedByUser = false
	booking.UserDeletedAt = nil
	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking restored successfully", "booking": booking})
}

// DeleteBooking permanently removes a booking row
func DeleteBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	result := config.DB.Delete(&models.Booking{}, "id = ?", bookingUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking permanently deleted"})
}

// BatchDeleteBookings hard-deletes a set of bookings. Missing ids are not an
// error, the response reports how many rows actually went away.
func BatchDeleteBookings(c *gin.Context) {
	var input BatchBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No bookings selected for deletion")
		return
	}

	result := config.DB.Delete(&models.Booking{}, "id IN ?", input.BookingIDs)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d booking(s) permanently deleted", result.RowsAffected),
		"deletedCount": result.RowsAffected,
	})
}

// BatchRestoreBookings restores a set of archived bookings. Same partial
// success contract as the admin batch delete.
func BatchRestoreBookings(c *gin.Context) {
	var input BatchBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No bookings selected for restore")
		return
	}

	result := config.DB.Model(&models.Booking{}).
		Where("id IN ?", input.BookingIDs).
		Updates(map[string]interface{}{
			"deleted_by_user": false,
			"user_deleted_at": nil,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d booking(s) restored", result.RowsAffected),
		"restoredCount": result.RowsAffected,
	})
}
