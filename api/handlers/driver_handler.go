package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DriverHandler handles driver-related requests
type DriverHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewDriverHandler creates a new DriverHandler instance
func NewDriverHandler(svc service.Service, log *logrus.Logger) *DriverHandler {
	return &DriverHandler{
		service: svc,
		log:     log,
	}
}

// CreateDriver handles driver creation
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var input service.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid driver format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid driver format",
		})
		return
	}

	driver, err := h.service.CreateDriver(c.Request.Context(), middleware.FleetID(c), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create driver")
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// GetDriver handles driver retrieval
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.service.GetDriver(c.Request.Context(), middleware.FleetID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to get driver")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListDrivers handles listing the fleet's drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.service.ListDrivers(c.Request.Context(), middleware.FleetID(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to list drivers")
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// UpdateDriver handles driver updates
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var input service.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid driver format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid driver format",
		})
		return
	}

	driver, err := h.service.UpdateDriver(c.Request.Context(), middleware.FleetID(c), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to update driver")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateDriverStatus handles patching a driver's status
func (h *DriverHandler) UpdateDriverStatus(c *gin.Context) {
	var body struct {
		Status models.DriverStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status format",
		})
		return
	}

	driver, err := h.service.UpdateDriverStatus(c.Request.Context(), middleware.FleetID(c), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, h.log, err, "Failed to update driver status")
		return
	}

	c.JSON(http.StatusOK, driver)
}
