package statemachine

import (
	"fmt"
	"strings"

	"chef-marketplace-api/models"
)

// Actor is who triggers a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorChef     Actor = "chef"
	ActorAdmin    Actor = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative order lifecycle.
var validTransitions = []Transition{
	// Chef accepts the order
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorChef},
	// Chef or customer can cancel a pending order
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorChef},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorCustomer},
	// Chef delivers an accepted order
	{From: models.OrderAccepted, To: models.OrderDelivered, Actor: ActorChef},
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

// CanTransition checks if a given actor can move an order from one state to another.
// Admins may perform any listed transition regardless of its actor.
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if actor == ActorAdmin {
		for _, next := range ValidTransitionsFrom(from) {
			if next == to {
				return nil
			}
		}
	} else if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		from, to, actor, from, describeValidFrom(from))
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

// GetAllTransitions returns the full order state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
