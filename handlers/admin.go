package handlers

import (
	"net/http"

	"foodnow-api/models"

	"github.com/gin-gonic/gin"
)

type RejectApplicationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ── Restaurant applications ──

func (h *Handler) ListPendingApplications(c *gin.Context) {
	apps, err := h.Applications.ListPending()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "applications": apps})
}

// ApproveApplication promotes the applicant and creates their restaurant
func (h *Handler) ApproveApplication(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.Applications.Approve(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// roles travel in the JWT, so the applicant's current token still says CUSTOMER
	c.JSON(http.StatusOK, gin.H{
		"message":    "Application approved",
		"note":       "The applicant must sign in again to use restaurant owner endpoints",
		"restaurant": restaurant,
	})
}

func (h *Handler) RejectApplication(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RejectApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.Applications.Reject(id, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application rejected", "application": app})
}

// ── Delivery personnel ──

// CreateDeliveryPersonnel registers a courier account
func (h *Handler) CreateDeliveryPersonnel(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.Auth.RegisterDeliveryPersonnel(req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Delivery personnel created", "user": user})
}

func (h *Handler) ListDeliveryAgents(c *gin.Context) {
	agents, err := h.Auth.ListDeliveryPersonnel()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "delivery_agents": agents})
}

// ── Platform overview ──

// AdminGetAllUsers lists all users with a per-role summary
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	users, err := h.Auth.ListUsers()
	if err != nil {
		h.respondError(c, err)
		return
	}
	roleCounts := map[models.UserRole]int{}
	for _, u := range users {
		roleCounts[u.Role]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "role_summary": roleCounts, "users": users})
}

func (h *Handler) AdminGetAllRestaurants(c *gin.Context) {
	restaurants, err := h.Restaurants.ListAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminGetAllOrders lists every order, optionally filtered with ?status=
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status " + string(status)})
		return
	}
	orders, err := h.Orders.ListAll(status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "status_summary": summary, "orders": orders})
}
