package handlers

import (
	"net/http"

	"example.com/fleetops/api/middleware"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AssignmentHandler handles assignment-related requests
type AssignmentHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler instance
func NewAssignmentHandler(svc service.Service, log *logrus.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: svc,
		log:     log,
	}
}

// BulkAssign handles a bulk allocation request for one day
func (h *AssignmentHandler) BulkAssign(c *gin.Context) {
	var input service.BulkAssignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid bulk assignment format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid bulk assignment format",
		})
		return
	}
	input.FleetID = middleware.FleetID(c)

	assignments, err := h.service.BulkAssign(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create assignments")
		return
	}

	c.JSON(http.StatusCreated, assignments)
}

// CreateAssignment handles a single assignment creation
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var input service.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WithError(err).Warn("Invalid assignment format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid assignment format",
		})
		return
	}
	input.FleetID = middleware.FleetID(c)

	assignment, err := h.service.CreateAssignment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create assignment")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// ListAssignments lists the fleet's assignments for a date
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required",
		})
		return
	}

	assignments, err := h.service.ListAssignmentsForDate(c.Request.Context(), middleware.FleetID(c), date)
	if err != nil {
		respondError(c, h.log, err, "Failed to list assignments")
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignment handles a partial assignment update
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var updates service.AssignmentUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.WithError(err).Warn("Invalid assignment update format")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid assignment update format",
		})
		return
	}

	assignment, err := h.service.UpdateAssignment(c.Request.Context(), middleware.FleetID(c), c.Param("id"), &updates)
	if err != nil {
		respondError(c, h.log, err, "Failed to update assignment")
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// RemoveAssignment handles assignment removal
func (h *AssignmentHandler) RemoveAssignment(c *gin.Context) {
	if err := h.service.RemoveAssignment(c.Request.Context(), middleware.FleetID(c), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to remove assignment")
		return
	}

	c.Status(http.StatusNoContent)
}
