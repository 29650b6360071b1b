package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

// respondError maps the domain error taxonomy onto HTTP statuses in one
// place. Domain errors carry their message to the client; infrastructure
// errors are logged and flattened so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrTransient):
		log.Printf("transient error: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable, please retry"})
	case errors.Is(err, models.ErrFatal):
		log.Printf("FATAL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal inconsistency detected", "code": "Fatal"})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// dbError translates a raw gorm failure into the domain taxonomy for
// handlers that talk to the database directly: a missing row is NotFound,
// anything else is a retryable I/O failure.
func dbError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%w: %v", models.ErrTransient, err)
}
