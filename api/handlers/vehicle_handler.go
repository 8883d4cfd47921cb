package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// VehicleHandler handles vehicle-related requests
type VehicleHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewVehicleHandler creates a new VehicleHandler instance
func NewVehicleHandler(svc service.Service, log *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: svc,
		log:     log,
	}
}

// CreateVehicle handles vehicle creation
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var input service.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid vehicle format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle format",
		})
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), middleware.FleetID(c), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicle handles vehicle retrieval
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.service.GetVehicle(c.Request.Context(), middleware.FleetID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to get vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// ListVehicles handles listing the fleet's vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context(), middleware.FleetID(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to list vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle handles vehicle updates
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var input service.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid vehicle format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle format",
		})
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), middleware.FleetID(c), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicleStatus handles patching a vehicle's status
func (h *VehicleHandler) UpdateVehicleStatus(c *gin.Context) {
	var body struct {
		Status models.VehicleStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status format",
		})
		return
	}

	vehicle, err := h.service.UpdateVehicleStatus(c.Request.Context(), middleware.FleetID(c), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, h.log, err, "Failed to update vehicle status")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
