// controllers/photo.go
package controllers

import (
	"errors"
	"net/http"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePhotoInput defines the expected JSON structure for registering a photo
type CreatePhotoInput struct {
	OriginalURL string    `json:"originalUrl" binding:"required"`
	EditedURL   *string   `json:"editedUrl"`
	OrderID     uuid.UUID `json:"orderId" binding:"required"`
}

// AttachEditedInput carries the edited file URL for an existing photo.
// Edited files are matched by photo id, never by upload position.
type AttachEditedInput struct {
	EditedURL string `json:"editedUrl" binding:"required"`
}

// CreatePhoto registers an uploaded photo against an order
func CreatePhoto(c *gin.Context) {
	var input CreatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", input.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	photo := models.Photo{
		OriginalURL: input.OriginalURL,
		EditedURL:   input.EditedURL,
		OrderID:     order.ID,
	}

	if err := config.DB.Create(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create photo")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// GetPhotos retrieves all photos for admins
func GetPhotos(c *gin.Context) {
	var photos []models.Photo
	if err := config.DB.Order("created_at DESC").Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// GetPhotosByOrder retrieves the photos of one order. Customers may only see
// their own orders; absence and foreign ownership look identical.
func GetPhotosByOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	role, _ := c.Get("role")

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

	if role != models.RoleAdmin && order.UserID.String() != userID {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	var photos []models.Photo
	if err := config.DB.Where("order_id = ?", orderUUID).Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// AttachEditedPhoto sets the edited file URL on a photo, keyed by photo id
func AttachEditedPhoto(c *gin.Context) {
	photoUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	var input AttachEditedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var photo models.Photo
	if err := config.DB.First(&photo, "id = ?", photoUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	photo.EditedURL = &input.EditedURL
	if err := config.DB.Save(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Edited photo attached", "photo": photo})
}
