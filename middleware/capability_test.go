package middleware

import (
	"testing"

	"household-eats-api/models"
)

func TestAllowedTable(t *testing.T) {
	tests := []struct {
		role models.UserRole
		op   Operation
		want bool
	}{
		{models.RoleFulfiller, OpAdvanceOrder, true},
		{models.RoleFulfiller, OpManageMenu, true},
		{models.RoleFulfiller, OpCancelOrder, true},
		{models.RoleFulfiller, OpCompleteOrder, false},
		{models.RoleOrderer, OpCompleteOrder, true},
		{models.RoleOrderer, OpCancelOrder, true},
		{models.RoleOrderer, OpAdvanceOrder, false},
		{models.RoleOrderer, OpManageMenu, false},
		{models.RoleVisitor, OpUseCart, true},
		{models.RoleVisitor, OpPlaceOrder, true},
		{models.RoleVisitor, OpAdvanceOrder, false},
		{models.RoleVisitor, OpCancelOrder, false},
		{models.RoleVisitor, OpManageMenu, false},
		{models.RoleVisitor, OpSubmitReview, false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.role, tt.op); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.role, tt.op, got, tt.want)
		}
	}
}

func TestTransitionOperationMapping(t *testing.T) {
	tests := []struct {
		target models.OrderStatus
		want   Operation
	}{
		{models.StatusCooking, OpAdvanceOrder},
		{models.StatusReady, OpAdvanceOrder},
		{models.StatusCompleted, OpCompleteOrder},
		{models.StatusCancelled, OpCancelOrder},
	}
	for _, tt := range tests {
		if got := TransitionOperation(tt.target); got != tt.want {
			t.Errorf("TransitionOperation(%s) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestOrderingOpsRequireWhitelist(t *testing.T) {
	for _, op := range []Operation{OpUseCart, OpPlaceOrder} {
		if !needsWhitelist[op] {
			t.Errorf("%s should require whitelisting", op)
		}
	}
	for _, op := range []Operation{OpAdvanceOrder, OpManageMenu, OpSubmitReview} {
		if needsWhitelist[op] {
			t.Errorf("%s should not require whitelisting", op)
		}
	}
}
