package handlers

import (
	"net/http"

	"foodnow-api/models"
	"foodnow-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns every restaurant (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Restaurants.ListAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurantMenu returns the available items of a restaurant (public)
func (h *Handler) GetRestaurantMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, items, err := h.Restaurants.PublicMenu(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Novelty: filter by category or dietary type
	category := c.Query("category")
	diet := models.DietaryType(c.Query("dietary_type"))
	filtered := make([]models.FoodItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if diet != "" && it.DietaryType != diet {
			continue
		}
		filtered = append(filtered, it)
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant, "count": len(filtered), "menu": filtered})
}

// GetOrderLifecycle documents the order state machine
func (h *Handler) GetOrderLifecycle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":      models.AllOrderStatuses,
		"transitions": statemachine.GetAllTransitions(),
		"notes": []string{
			"A successful payment confirms a PENDING order automatically",
			"Cancelling a PENDING order refunds its payment when there is one",
			"Admins may set any status",
		},
	})
}
