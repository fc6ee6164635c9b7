package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imara/models"
	"imara/utils"
)

const uploadFolder = "imara"

// UploadImage accepts a multipart image and stores it in Cloudinary.
// When a businessId form field is present the image is also appended to
// that business's gallery.
func (hb *HandlerBundle) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "file form field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read upload", err.Error())
		return
	}
	defer file.Close()

	upload, err := hb.Media.UploadImage(c.Request.Context(), file, uploadFolder)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "upload failed", err.Error())
		return
	}

	if businessID := c.PostForm("businessId"); businessID != "" {
		image := models.GalleryImage{
			ID:         uuid.New().String(),
			ImageURL:   upload.SecureURL,
			Caption:    c.PostForm("caption"),
			ServiceID:  c.PostForm("serviceId"),
			UploadedAt: time.Now().UTC(),
		}
		if err := hb.Businesses.AddGalleryImage(c.Request.Context(), businessID, image); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to update gallery", err.Error())
			return
		}
	}

	c.JSON(http.StatusCreated, upload)
}

// DeleteImage removes a stored asset by its public ID.
func (hb *HandlerBundle) DeleteImage(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "publicId query parameter is required")
		return
	}

	if err := hb.Media.Delete(c.Request.Context(), publicID); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "delete failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetImageURL resolves the delivery URL for a stored asset.
func (hb *HandlerBundle) GetImageURL(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "publicId query parameter is required")
		return
	}

	url, err := hb.Media.DownloadURL(c.Request.Context(), publicID, time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to resolve URL", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
