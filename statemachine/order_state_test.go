package statemachine

import (
	"testing"

	"foodnow-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   Actor
		wantErr bool
	}{
		{"payment confirms pending", models.StatusPending, models.StatusConfirmed, ActorSystem, false},
		{"restaurant confirms pending", models.StatusPending, models.StatusConfirmed, ActorRestaurant, false},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, ActorCustomer, false},
		{"customer cannot cancel confirmed", models.StatusConfirmed, models.StatusCancelled, ActorCustomer, true},
		{"restaurant cancels confirmed", models.StatusConfirmed, models.StatusCancelled, ActorRestaurant, false},
		{"restaurant skips preparing", models.StatusConfirmed, models.StatusReadyForPickup, ActorRestaurant, false},
		{"delivery cannot prepare", models.StatusConfirmed, models.StatusPreparing, ActorDelivery, true},
		{"delivery picks up", models.StatusReadyForPickup, models.StatusOutForDelivery, ActorDelivery, false},
		{"restaurant cannot pick up", models.StatusReadyForPickup, models.StatusOutForDelivery, ActorRestaurant, true},
		{"delivery delivers", models.StatusOutForDelivery, models.StatusDelivered, ActorDelivery, false},
		{"no way back from delivered", models.StatusDelivered, models.StatusPending, ActorRestaurant, true},
		{"admin forces anything", models.StatusDelivered, models.StatusPending, ActorAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CanTransition(%s, %s, %s) error = %v, wantErr %v", tt.from, tt.to, tt.actor, err, tt.wantErr)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	got := ValidTransitionsFrom(models.StatusConfirmed)
	want := []models.OrderStatus{models.StatusPreparing, models.StatusReadyForPickup, models.StatusCancelled}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}

	for _, s := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestActorForRole(t *testing.T) {
	cases := map[models.UserRole]Actor{
		models.RoleCustomer:          ActorCustomer,
		models.RoleRestaurantOwner:   ActorRestaurant,
		models.RoleDeliveryPersonnel: ActorDelivery,
		models.RoleAdmin:             ActorAdmin,
	}
	for role, want := range cases {
		if got := ActorForRole(role); got != want {
			t.Errorf("ActorForRole(%s) = %s, want %s", role, got, want)
		}
	}
}
