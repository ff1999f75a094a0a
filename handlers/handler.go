package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodnow-api/middleware"
	"foodnow-api/services"
	"foodnow-api/statemachine"
	"foodnow-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler holds the services every endpoint delegates to
type Handler struct {
	Auth         *services.AuthService
	Applications *services.ApplicationService
	Menu         *services.MenuService
	Restaurants  *services.RestaurantService
	Carts        *services.CartService
	Orders       *services.OrderService
	Payments     *services.PaymentService
	Reviews      *services.ReviewService
	Store        *storage.LocalStore
	Log          logrus.FieldLogger
}

// respondError maps service errors onto HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	var te *services.TransitionError
	switch {
	case errors.As(err, &te):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    te.From,
			"requested":         te.To,
			"reason":            te.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(te.From),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrEmptyFile), errors.Is(err, storage.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		h.Log.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": middleware.GetRequestID(c),
		}).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID parses a positive numeric path parameter, writing a 400 on failure
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
