package handlers

import (
	"errors"
	"net/http"

	"example.com/fleetops/internal/repository"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors onto HTTP responses. Validation failures
// become 400, slot conflicts 409, missing records 404; anything else is a 500
// with the detail kept out of the response body.
func respondError(c *gin.Context, log *logrus.Logger, err error, fallback string) {
	switch {
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsConflictError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrSearchDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Search is not enabled"})
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
