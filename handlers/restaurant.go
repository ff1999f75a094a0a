package handlers

import (
	"net/http"

	"foodnow-api/middleware"
	"foodnow-api/models"
	"foodnow-api/services"

	"github.com/gin-gonic/gin"
)

type ApplyRequest struct {
	RestaurantName string `json:"restaurant_name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	BusinessID     string `json:"business_id" binding:"required"`
	ImageURL       string `json:"image_url"`
}

type RestaurantProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type ImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

type FoodItemRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"required,gt=0"`
	ImageURL    string             `json:"image_url"`
	Category    string             `json:"category"`
	DietaryType models.DietaryType `json:"dietary_type" binding:"omitempty,oneof=VEG NON_VEG VEGAN"`
}

func (r FoodItemRequest) input() services.FoodItemInput {
	return services.FoodItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		DietaryType: r.DietaryType,
	}
}

// Apply submits a restaurant application (customer only)
func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.Applications.Apply(middleware.GetUserID(c), services.ApplicationInput{
		RestaurantName: req.RestaurantName,
		Address:        req.Address,
		Phone:          req.Phone,
		BusinessID:     req.BusinessID,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "application": app})
}

// ── Restaurant profile ──

func (h *Handler) GetMyRestaurant(c *gin.Context) {
	restaurant, err := h.Restaurants.Profile(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

func (h *Handler) UpdateMyRestaurant(c *gin.Context) {
	var req RestaurantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	restaurant, err := h.Restaurants.UpdateProfile(middleware.GetUserID(c), services.RestaurantProfileInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// UpdateRestaurantImage points the profile at an already uploaded image
func (h *Handler) UpdateRestaurantImage(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	restaurant, err := h.Restaurants.UpdateImage(middleware.GetUserID(c), req.ImageURL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UploadRestaurantImage stores a multipart image and sets it on the profile
func (h *Handler) UploadRestaurantImage(c *gin.Context) {
	url, ok := h.saveUpload(c)
	if !ok {
		return
	}
	restaurant, err := h.Restaurants.UpdateImage(middleware.GetUserID(c), url)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url, "restaurant": restaurant})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	dash, err := h.Restaurants.Dashboard(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) GetRestaurantReviews(c *gin.Context) {
	reviews, err := h.Reviews.ListForRestaurant(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// ── Menu Management ──

func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.Menu.List(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

func (h *Handler) AddMenuItem(c *gin.Context) {
	var req FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Menu.Add(middleware.GetUserID(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Menu.Update(middleware.GetUserID(c), itemID, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

func (h *Handler) ToggleMenuItemAvailability(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	item, err := h.Menu.ToggleAvailability(middleware.GetUserID(c), itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Menu.Delete(middleware.GetUserID(c), itemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
