package statemachine

import (
	"errors"
	"testing"

	"household-eats-api/models"
)

func TestLegalTransitions(t *testing.T) {
	legal := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusCooking},
		{models.StatusCooking, models.StatusReady},
		{models.StatusReady, models.StatusCompleted},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusCooking, models.StatusCancelled},
	}
	for _, tt := range legal {
		if err := CanTransition(tt.from, tt.to); err != nil {
			t.Errorf("%s → %s should be legal, got %v", tt.from, tt.to, err)
		}
	}
}

func TestIllegalTransitions(t *testing.T) {
	illegal := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusCompleted}, // no skipping ahead
		{models.StatusPending, models.StatusReady},
		{models.StatusReady, models.StatusCancelled}, // too late to cancel
		{models.StatusCompleted, models.StatusPending},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusCancelled, models.StatusCooking},
		{models.StatusCooking, models.StatusPending}, // no going backwards
	}
	for _, tt := range illegal {
		err := CanTransition(tt.from, tt.to)
		if err == nil {
			t.Errorf("%s → %s should be rejected", tt.from, tt.to)
			continue
		}
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s → %s: error should wrap ErrInvalidTransition, got %v", tt.from, tt.to, err)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !IsTerminal(models.StatusCompleted) {
		t.Error("completed must be terminal")
	}
	if !IsTerminal(models.StatusCancelled) {
		t.Error("cancelled must be terminal")
	}
	for _, s := range []models.OrderStatus{models.StatusPending, models.StatusCooking, models.StatusReady} {
		if IsTerminal(s) {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	if len(nexts) != 2 {
		t.Fatalf("pending should have 2 next states, got %v", nexts)
	}
	seen := map[models.OrderStatus]bool{}
	for _, s := range nexts {
		seen[s] = true
	}
	if !seen[models.StatusCooking] || !seen[models.StatusCancelled] {
		t.Errorf("pending next states should be cooking and cancelled, got %v", nexts)
	}
}
