package middleware

import (
	"net/http"

	"household-eats-api/models"

	"github.com/gin-gonic/gin"
)

// Operation names a role-gated action. The capability table below is the
// single place role gating lives; handlers never re-implement it per call
// site.
type Operation string

const (
	OpUseCart       Operation = "cart.mutate"
	OpPlaceOrder    Operation = "order.place"
	OpAdvanceOrder  Operation = "order.advance"  // pending→cooking→ready
	OpCompleteOrder Operation = "order.complete" // ready→completed on receipt
	OpCancelOrder   Operation = "order.cancel"
	OpDeleteOrder   Operation = "order.delete"
	OpManageMenu    Operation = "menu.manage"
	OpSubmitReview  Operation = "review.submit"
	OpDeleteReview  Operation = "review.delete"
)

var capabilities = map[Operation]map[models.UserRole]bool{
	OpUseCart:       {models.RoleFulfiller: true, models.RoleOrderer: true, models.RoleVisitor: true},
	OpPlaceOrder:    {models.RoleFulfiller: true, models.RoleOrderer: true, models.RoleVisitor: true},
	OpAdvanceOrder:  {models.RoleFulfiller: true},
	OpCompleteOrder: {models.RoleOrderer: true},
	OpCancelOrder:   {models.RoleFulfiller: true, models.RoleOrderer: true},
	OpDeleteOrder:   {models.RoleFulfiller: true, models.RoleOrderer: true},
	OpManageMenu:    {models.RoleFulfiller: true},
	OpSubmitReview:  {models.RoleFulfiller: true, models.RoleOrderer: true},
	OpDeleteReview:  {models.RoleFulfiller: true, models.RoleOrderer: true},
}

// Ordering privileges additionally require the whitelist flag; visitors
// get it only after an admin toggles them on.
var needsWhitelist = map[Operation]bool{
	OpUseCart:    true,
	OpPlaceOrder: true,
}

// Allowed answers (role, operation) → allow/deny.
func Allowed(role models.UserRole, op Operation) bool {
	return capabilities[op][role]
}

// TransitionOperation maps a requested target status to the capability
// that gates it. The fulfiller drives preparation, the orderer confirms
// receipt, both may cancel.
func TransitionOperation(target models.OrderStatus) Operation {
	switch target {
	case models.StatusCooking, models.StatusReady:
		return OpAdvanceOrder
	case models.StatusCompleted:
		return OpCompleteOrder
	case models.StatusCancelled:
		return OpCancelOrder
	default:
		return OpAdvanceOrder
	}
}

// RequireCapability enforces the capability table for a whole route.
// Must run after Identity().
func RequireCapability(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if !Allowed(role, op) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for role '" + string(role) + "'"})
			c.Abort()
			return
		}
		if needsWhitelist[op] && !IsWhitelisted(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Ordering requires whitelisting by the admin"})
			c.Abort()
			return
		}
		c.Next()
	}
}
