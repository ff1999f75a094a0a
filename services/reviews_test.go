package services

import (
	"testing"

	"foodnow-api/models"
)

func TestSubmitReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	owner, rest, _ := createRestaurant(t, db, "o@example.com")
	customer := createUser(t, db, "c@example.com", models.RoleCustomer)

	open := createOrder(t, db, customer.ID, rest.ID, models.StatusPreparing)
	_, err := svc.Submit(customer.ID, open.ID, 5, "")
	wantErr(t, err, ErrInvalidState)

	done := createOrder(t, db, customer.ID, rest.ID, models.StatusDelivered)
	_, err = svc.Submit(customer.ID, done.ID, 6, "")
	wantErr(t, err, ErrValidation)

	rev, err := svc.Submit(customer.ID, done.ID, 4, " tasty ")
	if err != nil {
		t.Fatal(err)
	}
	if rev.RestaurantID != rest.ID || rev.Comment != "tasty" {
		t.Errorf("review = %+v", rev)
	}

	_, err = svc.Submit(customer.ID, done.ID, 3, "again")
	wantErr(t, err, ErrConflict)

	stranger := createUser(t, db, "s@example.com", models.RoleCustomer)
	_, err = svc.Submit(stranger.ID, done.ID, 3, "")
	wantErr(t, err, ErrNotFound)

	list, err := svc.ListForRestaurant(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("reviews = %d", len(list))
	}

	dash, err := NewRestaurantService(db).Dashboard(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dash.ReviewCount != 1 || dash.AverageRating != 4 || dash.TotalOrders != 2 || dash.ActiveOrders != 1 || dash.Revenue != 25 {
		t.Errorf("dashboard = %+v", dash)
	}
}
