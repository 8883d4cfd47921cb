package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InspectionHandler handles inspection-related requests
type InspectionHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewInspectionHandler creates a new InspectionHandler instance
func NewInspectionHandler(svc service.Service, log *logrus.Logger) *InspectionHandler {
	return &InspectionHandler{
		service: svc,
		log:     log,
	}
}

// SubmitInspection handles an inspection submission
func (h *InspectionHandler) SubmitInspection(c *gin.Context) {
	var input service.InspectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid inspection format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inspection format",
		})
		return
	}
	input.FleetID = middleware.FleetID(c)

	inspection, err := h.service.SubmitInspection(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to submit inspection")
		return
	}

	c.JSON(http.StatusCreated, inspection)
}

// GetInspection handles inspection retrieval
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	inspection, err := h.service.GetInspection(c.Request.Context(), middleware.FleetID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to get inspection")
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// ListInspections lists the fleet's inspections, optionally filtered by
// vehicle and/or date
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	inspections, err := h.service.ListInspections(
		c.Request.Context(),
		middleware.FleetID(c),
		c.Query("vehicle_id"),
		c.Query("date"),
	)
	if err != nil {
		respondError(c, h.log, err, "Failed to list inspections")
		return
	}

	c.JSON(http.StatusOK, inspections)
}

// SearchInspections runs a free-text query against the inspection index
func (h *InspectionHandler) SearchInspections(c *gin.Context) {
	results, err := h.service.SearchInspections(c.Request.Context(), middleware.FleetID(c), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err, "Failed to search inspections")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
