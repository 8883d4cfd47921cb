package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FleetHandler handles fleet-related requests
type FleetHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewFleetHandler creates a new FleetHandler instance
func NewFleetHandler(svc service.Service, log *logrus.Logger) *FleetHandler {
	return &FleetHandler{
		service: svc,
		log:     log,
	}
}

// CreateFleet handles fleet creation
func (h *FleetHandler) CreateFleet(c *gin.Context) {
	var input service.FleetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid fleet format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid fleet format",
		})
		return
	}

	fleet, err := h.service.CreateFleet(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create fleet")
		return
	}

	c.JSON(http.StatusCreated, fleet)
}

// GetFleet returns the fleet the request token is scoped to
func (h *FleetHandler) GetFleet(c *gin.Context) {
	fleet, err := h.service.GetFleet(c.Request.Context(), middleware.FleetID(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to get fleet")
		return
	}

	c.JSON(http.StatusOK, fleet)
}

// UpdateFleet updates the fleet the request token is scoped to
func (h *FleetHandler) UpdateFleet(c *gin.Context) {
	var input service.FleetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid fleet format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid fleet format",
		})
		return
	}

	fleet, err := h.service.UpdateFleet(c.Request.Context(), middleware.FleetID(c), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to update fleet")
		return
	}

	c.JSON(http.StatusOK, fleet)
}
