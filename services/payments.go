package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"foodnow-api/metrics"
	"foodnow-api/models"
	"foodnow-api/repository"
	"foodnow-api/statemachine"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentOutcome decides whether a simulated charge goes through
type PaymentOutcome func() bool

// RandomOutcome succeeds with the given probability
func RandomOutcome(successRate float64) PaymentOutcome {
	return func() bool { return rand.Float64() < successRate }
}

// PaymentService simulates a payment processor
type PaymentService struct {
	db       *gorm.DB
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	outcome  PaymentOutcome
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewPaymentService(db *gorm.DB, outcome PaymentOutcome, log logrus.FieldLogger) *PaymentService {
	return &PaymentService{
		db:       db,
		orders:   repository.NewOrderRepository(db),
		payments: repository.NewPaymentRepository(db),
		outcome:  outcome,
		log:      log,
		now:      time.Now,
	}
}

func newTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ProcessPaymentForOrder charges a PENDING order of the customer. A successful
// charge confirms the order; a failed one leaves it PENDING. Either way the
// attempt is recorded.
func (s *PaymentService) ProcessPaymentForOrder(customerID, orderID uint, method string) (*models.Payment, *models.Order, error) {
	var (
		payment *models.Payment
		order   *models.Order
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)

		var err error
		order, err = orders.FindForCustomer(orderID, customerID)
		if err != nil {
			return notFound(err, "order")
		}
		if order.Status != models.StatusPending {
			return fmt.Errorf("order %d is %s, only PENDING orders can be paid: %w", order.ID, order.Status, ErrInvalidState)
		}

		if method == "" {
			method = "CARD"
		}
		payment = &models.Payment{
			OrderID:       order.ID,
			Amount:        order.TotalPrice,
			Method:        method,
			TransactionID: newTransactionID(),
			Status:        models.PaymentFailed,
			PaymentTime:   s.now(),
		}
		if s.outcome() {
			payment.Status = models.PaymentSuccessful
		}
		if err := s.payments.WithTx(tx).Create(payment); err != nil {
			return err
		}
		if payment.Status != models.PaymentSuccessful {
			return nil
		}

		if err := statemachine.CanTransition(order.Status, models.StatusConfirmed, statemachine.ActorSystem); err != nil {
			return &TransitionError{From: order.Status, To: models.StatusConfirmed, Reason: err}
		}
		if err := orders.UpdateStatus(order.ID, models.StatusConfirmed); err != nil {
			return err
		}
		if err := orders.AddHistory(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   models.StatusConfirmed,
			Note:       "payment " + payment.TransactionID,
		}); err != nil {
			return err
		}
		order.Status = models.StatusConfirmed
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordPayment(string(payment.Status))
	if payment.Status == models.PaymentSuccessful {
		metrics.RecordOrderTransition(string(models.StatusConfirmed))
	}
	s.log.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"transaction_id": payment.TransactionID,
		"status":         payment.Status,
	}).Info("payment processed")
	return payment, order, nil
}

// InitiateRefund marks the latest SUCCESSFUL payment of the order as REFUNDED
// and reports whether it did. An order without one is logged and ignored.
func (s *PaymentService) InitiateRefund(tx *gorm.DB, orderID uint) (bool, error) {
	payments := s.payments.WithTx(tx)
	p, err := payments.LatestSuccessful(orderID)
	if repository.IsNotFound(err) {
		s.log.WithField("order_id", orderID).Info("no successful payment to refund")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := payments.UpdateStatus(p.ID, models.PaymentRefunded); err != nil {
		return false, err
	}
	s.log.WithFields(logrus.Fields{"order_id": orderID, "transaction_id": p.TransactionID}).Info("payment refunded")
	return true, nil
}
