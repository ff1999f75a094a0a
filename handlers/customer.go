package handlers

import (
	"net/http"

	"foodnow-api/middleware"

	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	FoodItemID uint `json:"food_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

type ProcessPaymentRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Method  string `json:"method"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ── Cart ──

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Carts.Get(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.Carts.AddItem(middleware.GetUserID(c), req.FoodItemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	foodItemID, ok := paramID(c, "foodItemId")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.Carts.UpdateItem(middleware.GetUserID(c), foodItemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	foodItemID, ok := paramID(c, "foodItemId")
	if !ok {
		return
	}
	cart, err := h.Carts.RemoveItem(middleware.GetUserID(c), foodItemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(middleware.GetUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// ── Orders ──

// PlaceOrder turns the cart into an order (customer only)
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.Orders.PlaceOrder(middleware.GetUserID(c), req.DeliveryAddress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
		"next":    "POST /api/payments/process to pay for the order",
	})
}

// GetMyOrders returns the caller's order history
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.ListForCustomer(middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order with its status history and payments
func (h *Handler) GetOrderDetail(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Orders.GetForCustomer(middleware.GetUserID(c), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": detail})
}

// CancelOrder cancels an unpaid order; a recorded payment is refunded
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.CancelOrder(middleware.GetUserID(c), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}

func (h *Handler) ReviewOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := h.Reviews.Submit(middleware.GetUserID(c), orderID, req.Rating, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ── Payments ──

// ProcessPayment runs the simulated charge for a PENDING order
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	payment, order, err := h.Payments.ProcessPaymentForOrder(middleware.GetUserID(c), req.OrderID, req.Method)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "order_status": order.Status})
}
