// controllers/gallery.go
package controllers

import (
	"net/http"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type AddGalleryPhotoInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// AddGalleryPhoto publishes a photo to the public showcase
func AddGalleryPhoto(c *gin.Context) {
	var input AddGalleryPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.Gallery{
		Title:    input.Title,
		ImageURL: input.ImageURL,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add gallery photo")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetGallery returns the public showcase, no auth required
func GetGallery(c *gin.Context) {
	var gallery []models.Gallery
	if err := config.DB.Order("created_at DESC").Find(&gallery).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve gallery")
		return
	}

	c.JSON(http.StatusOK, gallery)
}
