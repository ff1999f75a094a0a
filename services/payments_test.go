package services

import (
	"regexp"
	"testing"

	"foodnow-api/models"
)

var txnPattern = regexp.MustCompile(`^txn_[0-9a-f]{32}$`)

func TestProcessPayment(t *testing.T) {
	tests := []struct {
		name        string
		outcome     PaymentOutcome
		wantPayment models.PaymentStatus
		wantOrder   models.OrderStatus
	}{
		{"success confirms order", alwaysPay, models.PaymentSuccessful, models.StatusConfirmed},
		{"failure keeps order pending", neverPay, models.PaymentFailed, models.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewPaymentService(db, tt.outcome, quietLog())
			customer := createUser(t, db, "c@example.com", models.RoleCustomer)
			_, rest, _ := createRestaurant(t, db, "o@example.com")
			order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)

			pay, got, err := svc.ProcessPaymentForOrder(customer.ID, order.ID, "")
			if err != nil {
				t.Fatal(err)
			}
			if pay.Status != tt.wantPayment || pay.Amount != order.TotalPrice || pay.Method != "CARD" {
				t.Errorf("payment = %+v", pay)
			}
			if !txnPattern.MatchString(pay.TransactionID) {
				t.Errorf("transaction id %q", pay.TransactionID)
			}
			if got.Status != tt.wantOrder {
				t.Errorf("order status = %s, want %s", got.Status, tt.wantOrder)
			}
			var stored models.Order
			db.First(&stored, order.ID)
			if stored.Status != tt.wantOrder {
				t.Errorf("stored order status = %s", stored.Status)
			}
		})
	}
}

func TestProcessPaymentRequiresPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, alwaysPay, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")

	order := createOrder(t, db, customer.ID, rest.ID, models.StatusConfirmed)
	_, _, err := svc.ProcessPaymentForOrder(customer.ID, order.ID, "CARD")
	wantErr(t, err, ErrInvalidState)

	other := createUser(t, db, "x@example.com", models.RoleCustomer)
	pending := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)
	_, _, err = svc.ProcessPaymentForOrder(other.ID, pending.ID, "CARD")
	wantErr(t, err, ErrNotFound)
}

func TestInitiateRefund(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, alwaysPay, quietLog())
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)
	_, rest, _ := createRestaurant(t, db, "o@example.com")
	order := createOrder(t, db, customer.ID, rest.ID, models.StatusPending)

	// nothing to refund is not an error
	refunded, err := svc.InitiateRefund(db, order.ID)
	if err != nil || refunded {
		t.Fatalf("no payments: refunded=%v err=%v", refunded, err)
	}

	ok := seedPayment(t, db, order.ID, models.PaymentSuccessful)
	failed := seedPayment(t, db, order.ID, models.PaymentFailed)
	refunded, err = svc.InitiateRefund(db, order.ID)
	if err != nil || !refunded {
		t.Fatalf("refunded=%v err=%v", refunded, err)
	}

	var stored models.Payment
	db.First(&stored, ok.ID)
	if stored.Status != models.PaymentRefunded {
		t.Errorf("successful payment = %s, want REFUNDED", stored.Status)
	}
	db.First(&stored, failed.ID)
	if stored.Status != models.PaymentFailed {
		t.Errorf("failed payment changed to %s", stored.Status)
	}

	// a second cancel finds nothing left to refund
	refunded, err = svc.InitiateRefund(db, order.ID)
	if err != nil || refunded {
		t.Fatalf("second refund: refunded=%v err=%v", refunded, err)
	}
}
