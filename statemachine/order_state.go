package statemachine

import (
	"errors"
	"fmt"

	"household-eats-api/models"
)

// ErrInvalidTransition is wrapped by every transition rejection so callers
// can map it to a domain error.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition.
// Legality only: which role may drive which transition is enforced by the
// capability layer, not here.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusCooking},
	{From: models.StatusCooking, To: models.StatusReady},
	{From: models.StatusReady, To: models.StatusCompleted},
	// An order can be abandoned before it is ready, not after
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusCooking, To: models.StatusCancelled},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// IsTerminal reports whether no transition leaves the given state
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// CanTransition checks whether moving from one state to another is legal
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
