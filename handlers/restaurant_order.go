package handlers

import (
	"net/http"

	"foodnow-api/middleware"
	"foodnow-api/models"
	"foodnow-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// GetRestaurantOrders returns all orders for the restaurant owner
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	orders, err := h.Orders.ListForRestaurant(middleware.GetUserID(c), models.OrderStatus(c.Query("status")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// MarkOrderReady moves one of the owner's orders to READY_FOR_PICKUP
func (h *Handler) MarkOrderReady(c *gin.Context) {
	orderID, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.Orders.MarkReady(middleware.GetUserID(c), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order is ready for pickup", "order": order})
}

// UpdateOrderStatus is shared by admins, owners and couriers
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	caller := services.Caller{UserID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
	order, err := h.Orders.UpdateOrderStatus(caller, orderID, req.Status, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": order.Status,
		"order":          order,
	})
}
