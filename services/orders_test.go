package services

import (
	"errors"
	"testing"
	"time"

	"foodnow-api/metrics"
	"foodnow-api/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

type failingRefunder struct{ calls int }

func (f *failingRefunder) InitiateRefund(tx *gorm.DB, orderID uint) (bool, error) {
	f.calls++
	// write something first so the savepoint rollback is exercised
	if err := tx.Model(&models.Payment{}).Where("order_id = ?", orderID).Update("method", "BROKEN").Error; err != nil {
		return false, err
	}
	return false, errors.New("payment gateway unreachable")
}

// sabotagingRefunder refunds, then breaks the rest of the status update
type sabotagingRefunder struct{ *PaymentService }

func (r sabotagingRefunder) InitiateRefund(tx *gorm.DB, orderID uint) (bool, error) {
	refunded, err := r.PaymentService.InitiateRefund(tx, orderID)
	if err != nil {
		return false, err
	}
	return refunded, tx.Exec("DROP TABLE order_status_histories").Error
}

func refundedCount() float64 {
	return testutil.ToFloat64(metrics.PaymentsCounter.WithLabelValues(string(models.PaymentRefunded)))
}

func seedPayment(t *testing.T, db *gorm.DB, orderID uint, status models.PaymentStatus) *models.Payment {
	t.Helper()
	p := &models.Payment{
		OrderID:       orderID,
		Amount:        25,
		Method:        "CARD",
		TransactionID: newTransactionID(),
		Status:        status,
		PaymentTime:   time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCancelPendingRefundsPayment(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, alwaysPay, quietLog())
	orders := NewOrderService(db, payments, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)
	pay := seedPayment(t, db, order.ID, models.PaymentSuccessful)

	got, err := orders.CancelOrder(customer.ID, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s", got.Status)
	}
	var stored models.Payment
	db.First(&stored, pay.ID)
	if stored.Status != models.PaymentRefunded {
		t.Errorf("payment = %s, want REFUNDED", stored.Status)
	}
}

func TestCancelRefundsEarlierSuccessfulPayment(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, neverPay, quietLog())
	orders := NewOrderService(db, payments, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")

	// a charge went through, then the order was forced back to PENDING and a retry failed
	order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)
	charged := seedPayment(t, db, order.ID, models.PaymentSuccessful)
	db.Model(charged).Update("payment_time", time.Now().Add(-time.Minute))
	retry, _, err := payments.ProcessPaymentForOrder(customer.ID, order.ID, "CARD")
	if err != nil {
		t.Fatal(err)
	}
	if retry.Status != models.PaymentFailed {
		t.Fatalf("retry = %s", retry.Status)
	}

	before := refundedCount()
	if _, err := orders.CancelOrder(customer.ID, order.ID); err != nil {
		t.Fatal(err)
	}

	var stored models.Payment
	db.First(&stored, charged.ID)
	if stored.Status != models.PaymentRefunded {
		t.Errorf("charged payment = %s, want REFUNDED", stored.Status)
	}
	db.First(&stored, retry.ID)
	if stored.Status != models.PaymentFailed {
		t.Errorf("failed retry changed to %s", stored.Status)
	}
	if got := refundedCount() - before; got != 1 {
		t.Errorf("refund metric moved by %v, want 1", got)
	}
}

func TestRefundMetricWaitsForCommit(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, alwaysPay, quietLog())
	orders := NewOrderService(db, sabotagingRefunder{payments}, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)
	pay := seedPayment(t, db, order.ID, models.PaymentSuccessful)

	before := refundedCount()
	if _, err := orders.CancelOrder(customer.ID, order.ID); err == nil {
		t.Fatal("expected the status update to fail")
	}

	var stored models.Payment
	db.First(&stored, pay.ID)
	if stored.Status != models.PaymentSuccessful {
		t.Errorf("rolled back refund left payment %s", stored.Status)
	}
	if got := refundedCount() - before; got != 0 {
		t.Errorf("refund metric moved by %v for a rolled back cancel", got)
	}
}

func TestCancelProceedsWhenRefundFails(t *testing.T) {
	db := newTestDB(t)
	refunder := &failingRefunder{}
	orders := NewOrderService(db, refunder, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)
	pay := seedPayment(t, db, order.ID, models.PaymentSuccessful)

	got, err := orders.CancelOrder(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel must succeed despite refund failure: %v", err)
	}
	if refunder.calls != 1 {
		t.Errorf("refund calls = %d", refunder.calls)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s", got.Status)
	}

	var storedOrder models.Order
	db.First(&storedOrder, order.ID)
	if storedOrder.Status != models.StatusCancelled {
		t.Errorf("stored status = %s", storedOrder.Status)
	}
	var storedPay models.Payment
	db.First(&storedPay, pay.ID)
	if storedPay.Method != "CARD" || storedPay.Status != models.PaymentSuccessful {
		t.Errorf("failed refund leaked writes: %+v", storedPay)
	}
}

func TestRefundOnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	refunder := &failingRefunder{}
	orders := NewOrderService(db, refunder, quietLog())
	owner, rest, _ := createRestaurant(t, db, "o@example.com")
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusConfirmed)
	if _, err := orders.UpdateOrderStatus(Caller{UserID: owner.ID, Role: models.RoleRestaurantOwner}, order.ID, models.StatusCancelled, ""); err != nil {
		t.Fatal(err)
	}
	if refunder.calls != 0 {
		t.Errorf("refund attempted for a CONFIRMED order")
	}
}

func TestUpdateOrderStatusRules(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &failingRefunder{}, quietLog())
	owner, rest, _ := createRestaurant(t, db, "o@example.com")
	otherOwner, _, _ := createRestaurant(t, db, "other@example.com")
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	admin := createUser(t, db, "a@example.com", models.RoleAdmin)

	ownerCaller := Caller{UserID: owner.ID, Role: models.RoleRestaurantOwner}

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusConfirmed)

	_, err := orders.UpdateOrderStatus(ownerCaller, order.ID, models.StatusDelivered, "")
	wantErr(t, err, ErrInvalidTransition)
	var te *TransitionError
	if !errors.As(err, &te) || te.From != models.StatusConfirmed {
		t.Errorf("want TransitionError from CONFIRMED, got %v", err)
	}

	_, err = orders.UpdateOrderStatus(Caller{UserID: otherOwner.ID, Role: models.RoleRestaurantOwner}, order.ID, models.StatusPreparing, "")
	wantErr(t, err, ErrNotFound)

	_, err = orders.UpdateOrderStatus(ownerCaller, 9999, models.StatusPreparing, "")
	wantErr(t, err, ErrNotFound)

	_, err = orders.UpdateOrderStatus(ownerCaller, order.ID, "COOKING", "")
	wantErr(t, err, ErrValidation)

	got, err := orders.UpdateOrderStatus(ownerCaller, order.ID, models.StatusPreparing, "on the stove")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusPreparing {
		t.Errorf("status = %s", got.Status)
	}

	// admin is not bound by the table
	got, err = orders.UpdateOrderStatus(Caller{UserID: admin.ID, Role: models.RoleAdmin}, order.ID, models.StatusPending, "reset")
	if err != nil {
		t.Fatalf("admin override: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s", got.Status)
	}

	var hist []models.OrderStatusHistory
	db.Where("order_id = ?", order.ID).Order("id").Find(&hist)
	if len(hist) != 2 || hist[0].Note != "on the stove" || hist[1].ChangedBy != admin.ID {
		t.Errorf("history = %+v", hist)
	}
}

func TestPlaceOrderFromCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, &failingRefunder{}, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, item := createRestaurant(t, db, "o@example.com")

	_, err := orders.PlaceOrder(customer.ID, "1 Main St")
	wantErr(t, err, ErrInvalidState)

	if _, err := carts.AddItem(customer.ID, item.ID, 2); err != nil {
		t.Fatal(err)
	}
	order, err := orders.PlaceOrder(customer.ID, "1 Main St")
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != models.StatusPending || order.RestaurantID != rest.ID || order.TotalPrice != 25 {
		t.Errorf("order = %+v", order)
	}

	// the snapshot survives a later price change
	db.Model(&models.FoodItem{}).Where("id = ?", item.ID).Update("price", 99)
	detail, err := orders.GetForCustomer(customer.ID, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Price != 12.5 || detail.Items[0].Quantity != 2 {
		t.Errorf("items = %+v", detail.Items)
	}
	if len(detail.History) != 1 || detail.History[0].ToStatus != models.StatusPending {
		t.Errorf("history = %+v", detail.History)
	}

	view, err := carts.Get(customer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 || view.RestaurantID != nil {
		t.Errorf("cart not cleared: %+v", view)
	}

	other := createUser(t, db, "x@example.com", models.RoleCustomer)
	_, err = orders.GetForCustomer(other.ID, order.ID)
	wantErr(t, err, ErrNotFound)
}

func TestDeliveryFlow(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, &failingRefunder{}, quietLog())
	owner, rest, _ := createRestaurant(t, db, "o@example.com")
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	first := createUser(t, db, "d1@example.com", models.RoleDeliveryPersonnel)
	second := createUser(t, db, "d2@example.com", models.RoleDeliveryPersonnel)

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusConfirmed)

	_, err := orders.AcceptDelivery(first.ID, order.ID)
	wantErr(t, err, ErrInvalidTransition)

	if _, err := orders.MarkReady(owner.ID, order.ID); err != nil {
		t.Fatal(err)
	}
	available, err := orders.ListAvailableForDelivery()
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 1 {
		t.Fatalf("available = %d", len(available))
	}

	got, err := orders.AcceptDelivery(first.ID, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusOutForDelivery || got.DeliveryPersonnelID == nil || *got.DeliveryPersonnelID != first.ID {
		t.Errorf("order = %+v", got)
	}

	_, err = orders.AcceptDelivery(second.ID, order.ID)
	wantErr(t, err, ErrConflict)

	_, err = orders.UpdateOrderStatus(Caller{UserID: second.ID, Role: models.RoleDeliveryPersonnel}, order.ID, models.StatusDelivered, "")
	wantErr(t, err, ErrNotFound)

	var courier models.User
	db.First(&courier, first.ID)
	if courier.DeliveryStatus == nil || *courier.DeliveryStatus != models.DeliveryOnDelivery {
		t.Errorf("courier status = %v", courier.DeliveryStatus)
	}

	if _, err := orders.UpdateOrderStatus(Caller{UserID: first.ID, Role: models.RoleDeliveryPersonnel}, order.ID, models.StatusDelivered, ""); err != nil {
		t.Fatal(err)
	}
	db.First(&courier, first.ID)
	if *courier.DeliveryStatus != models.DeliveryOnline {
		t.Errorf("courier status after delivery = %s", *courier.DeliveryStatus)
	}

	mine, err := orders.ListForDelivery(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Status != models.StatusDelivered {
		t.Errorf("courier orders = %+v", mine)
	}
}
