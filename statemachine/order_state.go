package statemachine

import (
	"fmt"
	"strings"

	"foodnow-api/models"
)

// Actor identifies who asks for a status change
type Actor string

const (
	ActorCustomer   Actor = "customer"
	ActorRestaurant Actor = "restaurant"
	ActorDelivery   Actor = "delivery"
	ActorSystem     Actor = "system"
	ActorAdmin      Actor = "admin"
)

// ActorForRole maps an authenticated role onto a state machine actor
func ActorForRole(role models.UserRole) Actor {
	switch role {
	case models.RoleRestaurantOwner:
		return ActorRestaurant
	case models.RoleDeliveryPersonnel:
		return ActorDelivery
	case models.RoleAdmin:
		return ActorAdmin
	default:
		return ActorCustomer
	}
}

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Successful payment confirms; the restaurant may also confirm by hand
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorSystem},
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorRestaurant},
	// Unpaid orders can be cancelled by either side
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorRestaurant},
	// Kitchen flow
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorRestaurant},
	{From: models.StatusConfirmed, To: models.StatusReadyForPickup, Actor: ActorRestaurant},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusPreparing, To: models.StatusReadyForPickup, Actor: ActorRestaurant},
	// Courier flow
	{From: models.StatusReadyForPickup, To: models.StatusOutForDelivery, Actor: ActorDelivery},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: ActorDelivery},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another.
// Admins are not bound by the table.
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if actor == ActorAdmin {
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%s -> %s is not allowed for %s; valid next states from %s: %s",
		from, to, actor, from, describeValidFrom(from))
}

// IsTerminal reports whether no transition leaves the status
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
