package services

import (
	"fmt"
	"strings"
	"time"

	"foodnow-api/metrics"
	"foodnow-api/models"
	"foodnow-api/repository"
	"foodnow-api/statemachine"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Refunder reverses the payment of an order inside the caller's transaction
type Refunder interface {
	InitiateRefund(tx *gorm.DB, orderID uint) (bool, error)
}

// Caller is the authenticated identity behind a request
type Caller struct {
	UserID uint
	Role   models.UserRole
}

// TransitionError is returned when the state machine rejects a status change
type TransitionError struct {
	From   models.OrderStatus
	To     models.OrderStatus
	Reason error
}

func (e *TransitionError) Error() string { return e.Reason.Error() }

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// OrderDetail is an order with its audit trail and payment attempts
type OrderDetail struct {
	models.Order
	History  []models.OrderStatusHistory `json:"history"`
	Payments []models.Payment            `json:"payments"`
}

type OrderService struct {
	db       *gorm.DB
	orders   *repository.OrderRepository
	carts    *repository.CartRepository
	items    *repository.FoodItemRepository
	rests    *repository.RestaurantRepository
	users    *repository.UserRepository
	payments *repository.PaymentRepository
	refunder Refunder
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewOrderService(db *gorm.DB, refunder Refunder, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		db:       db,
		orders:   repository.NewOrderRepository(db),
		carts:    repository.NewCartRepository(db),
		items:    repository.NewFoodItemRepository(db),
		rests:    repository.NewRestaurantRepository(db),
		users:    repository.NewUserRepository(db),
		payments: repository.NewPaymentRepository(db),
		refunder: refunder,
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder turns the customer's cart into a PENDING order and empties the cart
func (s *OrderService) PlaceOrder(customerID uint, deliveryAddress string) (*models.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return nil, fmt.Errorf("delivery address is required: %w", ErrValidation)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		cart, err := carts.GetOrCreate(customerID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 || cart.RestaurantID == nil {
			return fmt.Errorf("cart is empty: %w", ErrInvalidState)
		}

		ids := make([]uint, len(cart.Items))
		for i, it := range cart.Items {
			ids[i] = it.FoodItemID
		}
		foods, err := s.items.WithTx(tx).FindByIDs(ids)
		if err != nil {
			return err
		}

		order = &models.Order{
			CustomerID:      customerID,
			RestaurantID:    *cart.RestaurantID,
			Status:          models.StatusPending,
			DeliveryAddress: deliveryAddress,
			OrderTime:       s.now(),
		}
		for _, it := range cart.Items {
			food, ok := foods[it.FoodItemID]
			if !ok || !food.Available || food.RestaurantID != order.RestaurantID {
				return fmt.Errorf("food item %d is no longer available: %w", it.FoodItemID, ErrInvalidState)
			}
			order.Items = append(order.Items, models.OrderItem{
				FoodItemID: food.ID,
				Name:       food.Name,
				Quantity:   it.Quantity,
				Price:      food.Price,
			})
			order.TotalPrice += food.Price * float64(it.Quantity)
		}

		orders := s.orders.WithTx(tx)
		if err := orders.Create(order); err != nil {
			return err
		}
		if err := orders.AddHistory(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: customerID,
			Note:      "order placed",
		}); err != nil {
			return err
		}
		return carts.Clear(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlacedCounter.Inc()
	s.log.WithFields(logrus.Fields{"order_id": order.ID, "customer_id": customerID, "total": order.TotalPrice}).Info("order placed")
	return order, nil
}

// UpdateOrderStatus moves an order to newStatus on behalf of the caller.
// Admins may set any status; everyone else is scoped to their own orders and
// bound by the transition table. Cancelling a PENDING order attempts a refund;
// a failed refund never blocks the cancellation.
func (s *OrderService) UpdateOrderStatus(caller Caller, orderID uint, newStatus models.OrderStatus, note string) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, ErrValidation)
	}
	actor := statemachine.ActorForRole(caller.Role)

	var (
		order    *models.Order
		prev     models.OrderStatus
		refunded bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		var err error
		order, err = orders.FindByID(orderID)
		if err != nil {
			return notFound(err, "order")
		}
		if err := s.checkScope(tx, caller, order); err != nil {
			return err
		}
		if err := statemachine.CanTransition(order.Status, newStatus, actor); err != nil {
			return &TransitionError{From: order.Status, To: newStatus, Reason: err}
		}

		prev = order.Status
		if newStatus == models.StatusCancelled && prev == models.StatusPending {
			refunded = s.refund(tx, order.ID)
		}

		if err := orders.UpdateStatus(order.ID, newStatus); err != nil {
			return err
		}
		if err := orders.AddHistory(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   newStatus,
			ChangedBy:  caller.UserID,
			Note:       note,
		}); err != nil {
			return err
		}

		// The courier is free again once the order leaves their hands
		if order.DeliveryPersonnelID != nil && (newStatus == models.StatusDelivered || newStatus == models.StatusCancelled) {
			if err := s.users.WithTx(tx).UpdateDeliveryStatus(*order.DeliveryPersonnelID, models.DeliveryOnline); err != nil {
				return err
			}
		}
		order.Status = newStatus
		return orders.LoadItems(order)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderTransition(string(newStatus))
	if refunded {
		metrics.RecordPayment(string(models.PaymentRefunded))
	}
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     prev,
		"to":       newStatus,
		"actor":    actor,
		"user_id":  caller.UserID,
	}).Info("order status updated")
	return order, nil
}

// refund runs the refund in a savepoint so its failure rolls back only its own writes
func (s *OrderService) refund(tx *gorm.DB, orderID uint) bool {
	var refunded bool
	err := tx.Transaction(func(sp *gorm.DB) error {
		var err error
		refunded, err = s.refunder.InitiateRefund(sp, orderID)
		return err
	})
	if err != nil {
		metrics.RefundFailuresCounter.Inc()
		s.log.WithError(err).WithField("order_id", orderID).Error("refund failed, cancelling anyway")
		return false
	}
	return refunded
}

// checkScope hides orders that the caller has no business touching
func (s *OrderService) checkScope(tx *gorm.DB, caller Caller, order *models.Order) error {
	switch caller.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleRestaurantOwner:
		rest, err := s.rests.WithTx(tx).FindByOwner(caller.UserID)
		if err != nil {
			return notFound(err, "restaurant for owner")
		}
		if order.RestaurantID != rest.ID {
			return fmt.Errorf("order %d: %w", order.ID, ErrNotFound)
		}
	case models.RoleDeliveryPersonnel:
		if order.DeliveryPersonnelID == nil || *order.DeliveryPersonnelID != caller.UserID {
			return fmt.Errorf("order %d is not assigned to you: %w", order.ID, ErrNotFound)
		}
	default:
		if order.CustomerID != caller.UserID {
			return fmt.Errorf("order %d: %w", order.ID, ErrNotFound)
		}
	}
	return nil
}

// CancelOrder lets a customer cancel their own unpaid order
func (s *OrderService) CancelOrder(customerID, orderID uint) (*models.Order, error) {
	return s.UpdateOrderStatus(Caller{UserID: customerID, Role: models.RoleCustomer}, orderID, models.StatusCancelled, "cancelled by customer")
}

// MarkReady moves one of the owner's orders to READY_FOR_PICKUP
func (s *OrderService) MarkReady(ownerID, orderID uint) (*models.Order, error) {
	return s.UpdateOrderStatus(Caller{UserID: ownerID, Role: models.RoleRestaurantOwner}, orderID, models.StatusReadyForPickup, "ready for pickup")
}

// AcceptDelivery assigns a READY_FOR_PICKUP order to the courier and sends it
// out. Only one courier can win the claim.
func (s *OrderService) AcceptDelivery(courierID, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		var err error
		order, err = orders.FindByID(orderID)
		if err != nil {
			return notFound(err, "order")
		}
		if order.DeliveryPersonnelID != nil {
			return fmt.Errorf("order %d already has a courier: %w", order.ID, ErrConflict)
		}
		if err := statemachine.CanTransition(order.Status, models.StatusOutForDelivery, statemachine.ActorDelivery); err != nil {
			return &TransitionError{From: order.Status, To: models.StatusOutForDelivery, Reason: err}
		}

		claimed, err := orders.ClaimForDelivery(order.ID, courierID)
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("order %d was claimed by another courier: %w", order.ID, ErrConflict)
		}
		if err := s.users.WithTx(tx).UpdateDeliveryStatus(courierID, models.DeliveryOnDelivery); err != nil {
			return err
		}
		if err := orders.AddHistory(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   models.StatusOutForDelivery,
			ChangedBy:  courierID,
			Note:       "picked up",
		}); err != nil {
			return err
		}
		order.Status = models.StatusOutForDelivery
		order.DeliveryPersonnelID = &courierID
		return orders.LoadItems(order)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderTransition(string(models.StatusOutForDelivery))
	s.log.WithFields(logrus.Fields{"order_id": order.ID, "courier_id": courierID}).Info("delivery accepted")
	return order, nil
}

// ── Queries ──

func (s *OrderService) ListForCustomer(customerID uint) ([]models.Order, error) {
	return s.orders.List(repository.OrderFilter{CustomerID: customerID})
}

func (s *OrderService) GetForCustomer(customerID, orderID uint) (*OrderDetail, error) {
	order, err := s.orders.FindForCustomer(orderID, customerID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return s.detail(order)
}

func (s *OrderService) detail(order *models.Order) (*OrderDetail, error) {
	if err := s.orders.LoadItems(order); err != nil {
		return nil, err
	}
	hist, err := s.orders.History(order.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, History: hist, Payments: payments}, nil
}

// ListForRestaurant returns the owner's orders, optionally filtered by status
func (s *OrderService) ListForRestaurant(ownerID uint, status models.OrderStatus) ([]models.Order, error) {
	rest, err := s.rests.FindByOwner(ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant for owner")
	}
	return s.orders.List(repository.OrderFilter{RestaurantID: rest.ID, Status: status})
}

func (s *OrderService) ListForDelivery(courierID uint) ([]models.Order, error) {
	return s.orders.List(repository.OrderFilter{DeliveryPersonnelID: courierID})
}

// ListAvailableForDelivery returns unassigned orders waiting for pickup
func (s *OrderService) ListAvailableForDelivery() ([]models.Order, error) {
	return s.orders.List(repository.OrderFilter{Status: models.StatusReadyForPickup, Unassigned: true})
}

func (s *OrderService) ListAll(status models.OrderStatus) ([]models.Order, error) {
	return s.orders.List(repository.OrderFilter{Status: status})
}
