package handlers

import (
	"net/http"

	"foodnow-api/middleware"

	"github.com/gin-gonic/gin"
)

// GetAvailableOrders shows orders waiting for a courier
func (h *Handler) GetAvailableOrders(c *gin.Context) {
	orders, err := h.Orders.ListAvailableForDelivery()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyDeliveries shows the courier's assigned orders
func (h *Handler) GetMyDeliveries(c *gin.Context) {
	orders, err := h.Orders.ListForDelivery(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AcceptDelivery claims a ready order and sends it out
func (h *Handler) AcceptDelivery(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.AcceptDelivery(middleware.GetUserID(c), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order picked up", "order": order})
}
