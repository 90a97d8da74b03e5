package services

import (
	"errors"
	"testing"

	"household-eats-api/models"
	"household-eats-api/statemachine"
)

func TestCreateOrderTotalsAndDrainsSharedCart(t *testing.T) {
	env := newTestEnv(t)
	hugo := env.seedUser(t, "Hugo", models.RoleFulfiller)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	tofu := env.seedDish(t, "Mapo Tofu", 12.5, "main", 4)
	rice := env.seedDish(t, "Rice", 2, "side", 0)

	// Both members contribute to the one shared cart
	env.cart.AddItem(hugo.ID, tofu.ID, 2, nil)
	env.cart.AddItem(yuge.ID, rice.ID, 3, nil)

	order := env.placeOrder(t, yuge,
		OrderLineInput{DishID: tofu.ID, Quantity: 2, AddedBy: &hugo.ID},
		OrderLineInput{DishID: rice.ID, Quantity: 3, AddedBy: &yuge.ID},
	)

	want := 12.5*2 + 2*3
	if order.TotalPrice != want {
		t.Errorf("total = %v, want %v", order.TotalPrice, want)
	}
	if order.Status != models.StatusPending {
		t.Errorf("new order status = %s, want pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.PriceAtOrder == 0 {
			t.Error("line item must freeze the resolved price")
		}
	}

	// Everyone's lines are gone, not just the initiator's
	lines, err := env.cart.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart should be empty after order creation, got %d lines", len(lines))
	}
}

func TestOrderTotalImmuneToMenuPriceChange(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Dumplings", 10, "main", 1)

	order := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 2})

	if _, err := env.dishes.Update(dish.ID, map[string]interface{}{"price": 99.0}); err != nil {
		t.Fatal(err)
	}

	var reloaded models.Order
	if err := env.db.Preload("Items").First(&reloaded, order.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.TotalPrice != 20 {
		t.Errorf("total changed to %v after menu edit, want 20", reloaded.TotalPrice)
	}
	if reloaded.Items[0].PriceAtOrder != 10 {
		t.Errorf("priceAtOrder changed to %v, want 10", reloaded.Items[0].PriceAtOrder)
	}
}

func TestCreateOrderSkipsUnresolvableDishes(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Noodles", 6, "main", 2)

	order := env.placeOrder(t, yuge,
		OrderLineInput{DishID: dish.ID, Quantity: 1},
		OrderLineInput{DishID: 424242, Quantity: 5}, // deleted concurrently
	)

	if len(order.Items) != 1 {
		t.Fatalf("unresolvable line should be skipped, got %d items", len(order.Items))
	}
	if order.TotalPrice != 6 {
		t.Errorf("total = %v, want 6 (only the resolved line)", order.TotalPrice)
	}
}

func TestCreateOrderWithNothingResolvableRollsBack(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Rice", 2, "side", 0)
	env.cart.AddItem(yuge.ID, dish.ID, 1, nil)

	_, err := env.orders.Create(yuge.ID, nil, []OrderLineInput{{DishID: 424242, Quantity: 1}})
	if !errors.Is(err, ErrNoResolvableItems) {
		t.Fatalf("got %v, want ErrNoResolvableItems", err)
	}

	// The transaction rolled back: no order, cart untouched
	var orders, carts int64
	env.db.Model(&models.Order{}).Count(&orders)
	env.db.Model(&models.CartItem{}).Count(&carts)
	if orders != 0 {
		t.Error("no order should exist after rollback")
	}
	if carts != 1 {
		t.Error("cart must survive a failed order creation")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.orders.Create(0, nil, []OrderLineInput{{DishID: 1}}); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing user: got %v", err)
	}
	if _, err := env.orders.Create(1, nil, nil); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty lines: got %v", err)
	}
}

func TestFullTransitionPipeline(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Hotpot", 30, "main", 5)
	order := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})

	env.completeOrder(t, order.ID)

	var done models.Order
	env.db.First(&done, order.ID)
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("completion timestamp must be stamped on the completed transition")
	}
}

func TestTransitionRejectsSkippingAhead(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Congee", 4, "breakfast", 0)
	order := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})

	_, err := env.orders.Transition(order.ID, models.StatusCompleted)
	if !errors.Is(err, statemachine.ErrInvalidTransition) {
		t.Fatalf("pending→completed: got %v, want ErrInvalidTransition", err)
	}

	// Rejected transition leaves the order untouched
	var reloaded models.Order
	env.db.First(&reloaded, order.ID)
	if reloaded.Status != models.StatusPending {
		t.Errorf("status = %s after rejected transition, want pending", reloaded.Status)
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Rice", 2, "side", 0)

	completed := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})
	env.completeOrder(t, completed.ID)

	cancelled := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})
	if _, err := env.orders.Transition(cancelled.ID, models.StatusCancelled); err != nil {
		t.Fatal(err)
	}

	for _, target := range []models.OrderStatus{models.StatusPending, models.StatusCooking, models.StatusCancelled} {
		if _, err := env.orders.Transition(completed.ID, target); !errors.Is(err, statemachine.ErrInvalidTransition) {
			t.Errorf("completed→%s: got %v, want rejection", target, err)
		}
	}
	for _, target := range []models.OrderStatus{models.StatusPending, models.StatusCooking, models.StatusCompleted} {
		if _, err := env.orders.Transition(cancelled.ID, target); !errors.Is(err, statemachine.ErrInvalidTransition) {
			t.Errorf("cancelled→%s: got %v, want rejection", target, err)
		}
	}
}

func TestTransitionMissingOrder(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.orders.Transition(424242, models.StatusCooking); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("got %v, want ErrOrderNotFound", err)
	}
}

func TestDeleteOrderCascades(t *testing.T) {
	env := newTestEnv(t)
	hugo := env.seedUser(t, "Hugo", models.RoleFulfiller)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Mapo Tofu", 12.5, "main", 4)

	doomed := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 2})
	keeper := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})

	thumb := "thumb.jpg"
	if _, err := env.reviews.Submit(hugo.ID, dish.ID, &doomed.ID, 5, nil,
		[]PhotoInput{{ImageURL: "photo.jpg", ThumbnailURL: &thumb}}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.reviews.Submit(yuge.ID, dish.ID, &keeper.ID, 4, nil, nil); err != nil {
		t.Fatal(err)
	}

	if err := env.orders.Delete(doomed.ID); err != nil {
		t.Fatal(err)
	}

	var orders, items, reviews, photos int64
	env.db.Model(&models.Order{}).Count(&orders)
	env.db.Model(&models.OrderItem{}).Where("order_id = ?", doomed.ID).Count(&items)
	env.db.Model(&models.Review{}).Count(&reviews)
	env.db.Model(&models.ReviewPhoto{}).Count(&photos)

	if orders != 1 {
		t.Errorf("order count = %d, want 1 (the keeper)", orders)
	}
	if items != 0 {
		t.Error("line items must cascade")
	}
	if reviews != 1 {
		t.Errorf("review count = %d, want 1 (the keeper's)", reviews)
	}
	if photos != 0 {
		t.Error("review photos must cascade")
	}
}

func TestDeleteMissingOrderIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	if err := env.orders.Delete(424242); err != nil {
		t.Fatalf("deleting a missing order must not error, got %v", err)
	}
}

func TestListFiltersAndJoins(t *testing.T) {
	env := newTestEnv(t)
	hugo := env.seedUser(t, "Hugo", models.RoleFulfiller)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Dumplings", 8, "main", 1)

	hugoOrder := env.placeOrder(t, hugo, OrderLineInput{DishID: dish.ID, Quantity: 1})
	env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 2})
	if _, err := env.orders.Transition(hugoOrder.ID, models.StatusCooking); err != nil {
		t.Fatal(err)
	}

	all, err := env.orders.List(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered list: got %d, want 2", len(all))
	}
	if all[0].Items[0].DishName == nil || *all[0].Items[0].DishName != "Dumplings" {
		t.Error("dish name should be joined onto line items")
	}

	byUser, err := env.orders.List(&hugo.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(byUser) != 1 || byUser[0].UserID != hugo.ID {
		t.Errorf("user filter failed: %+v", byUser)
	}

	cooking := models.StatusCooking
	byStatus, err := env.orders.List(nil, &cooking)
	if err != nil {
		t.Fatal(err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != hugoOrder.ID {
		t.Errorf("status filter failed: %+v", byStatus)
	}
}

func TestListKeepsRowsWithDeletedDish(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Ephemeral", 9, "special", 0)
	order := env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})

	if err := env.dishes.Delete(dish.ID); err != nil {
		t.Fatal(err)
	}

	views, err := env.orders.List(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || len(views[0].Items) != 1 {
		t.Fatalf("order and its line must survive dish deletion: %+v", views)
	}
	item := views[0].Items[0]
	if item.DishName != nil {
		t.Error("deleted dish should join as null, not drop the row")
	}
	if item.PriceAtOrder != 9 {
		t.Errorf("frozen price must survive dish deletion, got %v", item.PriceAtOrder)
	}
	_ = order
}

func TestListCacheFreshAfterWrite(t *testing.T) {
	env := newTestEnv(t)
	yuge := env.seedUser(t, "Yuge", models.RoleOrderer)
	dish := env.seedDish(t, "Rice", 2, "side", 0)

	env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 1})
	first, err := env.orders.List(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d orders, want 1", len(first))
	}

	// A new order invalidates the orders prefix; the next read must not
	// serve the pre-invalidation listing
	env.placeOrder(t, yuge, OrderLineInput{DishID: dish.ID, Quantity: 2})
	second, err := env.orders.List(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 2 {
		t.Fatalf("stale listing served after invalidation: got %d orders, want 2", len(second))
	}
}
