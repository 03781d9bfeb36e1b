package statemachine

import (
	"errors"
	"fmt"

	"chef-marketplace-api/models"
)

var (
	// ErrAlreadyResolved is returned when a decision is made on a request that is no longer pending.
	ErrAlreadyResolved = errors.New("role request already resolved")
	// ErrInvalidDecision is returned for a target status other than approved or rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// IsDecision reports whether status is a terminal role request status.
func IsDecision(status models.RequestStatus) bool {
	return status == models.RequestApproved || status == models.RequestRejected
}

// CanResolve checks that a role request in state from may be decided as to.
// A decision is final: terminal requests are never re-opened or re-decided.
func CanResolve(from, to models.RequestStatus) error {
	if !IsDecision(to) {
		return fmt.Errorf("%w: got %q", ErrInvalidDecision, to)
	}
	if from != models.RequestPending {
		return fmt.Errorf("%w: status is %q", ErrAlreadyResolved, from)
	}
	return nil
}

// RoleRequestTransitions documents the role request lifecycle.
func RoleRequestTransitions() []map[string]string {
	return []map[string]string{
		{"from": string(models.RequestPending), "to": string(models.RequestApproved), "actor": string(ActorAdmin)},
		{"from": string(models.RequestPending), "to": string(models.RequestRejected), "actor": string(ActorAdmin)},
	}
}
