package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FuelHandler handles fuel-entry requests
type FuelHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewFuelHandler creates a new FuelHandler instance
func NewFuelHandler(svc service.Service, log *logrus.Logger) *FuelHandler {
	return &FuelHandler{
		service: svc,
		log:     log,
	}
}

// AddFuelEntry handles recording a refuelling
func (h *FuelHandler) AddFuelEntry(c *gin.Context) {
	var input service.FuelEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid fuel entry format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid fuel entry format",
		})
		return
	}
	input.FleetID = middleware.FleetID(c)

	entry, err := h.service.AddFuelEntry(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to add fuel entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListFuelEntries lists the fleet's fuel entries, optionally filtered by
// vehicle
func (h *FuelHandler) ListFuelEntries(c *gin.Context) {
	entries, err := h.service.ListFuelEntries(c.Request.Context(), middleware.FleetID(c), c.Query("vehicle_id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to list fuel entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}
