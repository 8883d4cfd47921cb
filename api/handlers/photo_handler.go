package handlers

import (
	"net/http"

	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxPhotoSize caps uploaded photos at 10 MB
const maxPhotoSize = 10 << 20

// PhotoHandler handles photo upload requests
type PhotoHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewPhotoHandler creates a new PhotoHandler instance
func NewPhotoHandler(svc service.Service, log *logrus.Logger) *PhotoHandler {
	return &PhotoHandler{
		service: svc,
		log:     log,
	}
}

// UploadPhoto handles a multipart photo upload. The form carries the file
// under "photo" plus a "vehicle_id" and an optional "folder" field.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	vehicleID := c.PostForm("vehicle_id")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "vehicle_id is required",
		})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "photo file is required",
		})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "photo exceeds the 10 MB limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.WithError(err).Error("Failed to open uploaded photo")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read photo",
		})
		return
	}
	defer file.Close()

	photo, err := h.service.UploadPhoto(
		c.Request.Context(),
		c.PostForm("folder"),
		vehicleID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		respondError(c, h.log, err, "Failed to upload photo")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// DeletePhoto removes a stored photo by key
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	if err := h.service.DeletePhoto(c.Request.Context(), c.Query("key")); err != nil {
		respondError(c, h.log, err, "Failed to delete photo")
		return
	}

	c.Status(http.StatusNoContent)
}
