package services

import (
	"errors"
	"fmt"
	"time"

	"household-eats-api/cache"
	"household-eats-api/models"
	"household-eats-api/statemachine"

	"gorm.io/gorm"
)

const orderListTTL = 30 * time.Second

// OrderService converts cart snapshots into immutable-total orders,
// advances them through the state machine and cascades deletion.
type OrderService struct {
	db       *gorm.DB
	cache    *cache.Cache
	notifier *Notifier
}

func NewOrderService(db *gorm.DB, c *cache.Cache, n *Notifier) *OrderService {
	return &OrderService{db: db, cache: c, notifier: n}
}

// OrderLineInput is one cart line handed to Create.
type OrderLineInput struct {
	DishID       uint
	Quantity     int
	SpecialNotes *string
	AddedBy      *uint
}

// OrderItemView is a line item joined with dish and contributor details.
type OrderItemView struct {
	ID            uint    `json:"id"`
	OrderID       uint    `json:"-"`
	DishID        uint    `json:"dish_id"`
	Quantity      int     `json:"quantity"`
	PriceAtOrder  float64 `json:"price_at_order"`
	SpecialNotes  *string `json:"special_notes"`
	DishName      *string `json:"dish_name"`
	DishThumbnail *string `json:"dish_thumbnail"`
	AddedBy       *uint   `json:"added_by"`
	AddedByName   *string `json:"added_by_name"`
}

// OrderView is an order with its joined line items attached.
type OrderView struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	Status      models.OrderStatus `json:"status"`
	TotalPrice  float64            `json:"total_price"`
	Notes       *string            `json:"notes"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at"`
	Items       []OrderItemView    `json:"items"`
}

// Create resolves each line's current dish price, freezes it into the
// line item, sums the total and drains the entire shared cart, all in
// one transaction. A line whose dish no longer exists is skipped rather
// than failing the order: a partial order beats all-or-nothing failure
// here. After commit the notifier is invoked best-effort.
func (s *OrderService) Create(userID uint, notes *string, lines []OrderLineInput) (models.Order, error) {
	if userID == 0 || len(lines) == 0 {
		return models.Order{}, ErrMissingField
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var items []models.OrderItem
		for _, line := range lines {
			var dish models.Dish
			if err := tx.First(&dish, line.DishID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Dish deleted since it was carted; skip the line
					continue
				}
				return err
			}
			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}
			addedBy := line.AddedBy
			if addedBy == nil {
				addedBy = &userID
			}
			total += dish.Price * float64(qty)
			items = append(items, models.OrderItem{
				DishID:       dish.ID,
				Quantity:     qty,
				PriceAtOrder: dish.Price,
				SpecialNotes: line.SpecialNotes,
				AddedBy:      addedBy,
			})
		}
		if len(items) == 0 {
			return ErrNoResolvableItems
		}

		order = models.Order{
			UserID:     userID,
			Status:     models.StatusPending,
			TotalPrice: total,
			Notes:      notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items

		// Drain the whole shared cart, not just the initiator's lines
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	s.cache.Invalidate("orders")
	s.cache.Invalidate("cart")
	s.cache.Invalidate("stats")

	if s.notifier != nil {
		s.notifier.OrderPlaced(len(order.Items), notes)
	}
	return order, nil
}

// Transition moves an order to the target status if the state machine
// allows it. Reaching completed stamps the completion timestamp.
func (s *OrderService) Transition(orderID uint, target models.OrderStatus) (models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if err := statemachine.CanTransition(order.Status, target); err != nil {
		// Return the untouched order so callers can report its state
		return order, err
	}

	updates := map[string]interface{}{"status": target}
	if target == models.StatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, err
	}

	s.cache.Invalidate("orders")
	s.cache.Invalidate("stats")
	return order, nil
}

// Delete cascades: review photos for reviews on this order, those
// reviews, the order's line items, then the order itself. Deleting a
// missing order is a no-op success.
func (s *OrderService) Delete(orderID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).Where("order_id = ?", orderID).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).
				Delete(&models.ReviewPhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", reviewIDs).
				Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", orderID).
			Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderID).Error
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate("orders")
	s.cache.Invalidate("reviews")
	s.cache.Invalidate("stats")
	return nil
}

// List returns orders newest-first with joined line items, optionally
// filtered by initiating user and status. The per-user and full listings
// are cached separately; status filtering happens after the cache so one
// cached listing serves every status view.
func (s *OrderService) List(userID *uint, status *models.OrderStatus) ([]OrderView, error) {
	key := "orders:list"
	if userID != nil {
		key = fmt.Sprintf("orders:user:%d", *userID)
	}
	if cached, ok := s.cache.Get(key); ok {
		if views, ok := cached.([]OrderView); ok {
			return filterByStatus(views, status), nil
		}
	}

	var orders []models.Order
	q := s.db.Order("created_at desc, id desc")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	var items []OrderItemView
	err := s.db.Table("order_items").
		Select(`order_items.id, order_items.order_id, order_items.dish_id,
			order_items.quantity, order_items.price_at_order, order_items.special_notes,
			dishes.name AS dish_name, dishes.thumbnail_url AS dish_thumbnail,
			order_items.added_by, users.name AS added_by_name`).
		Joins("LEFT JOIN dishes ON dishes.id = order_items.dish_id").
		Joins("LEFT JOIN users ON users.id = order_items.added_by").
		Order("order_items.id asc").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	itemsByOrder := make(map[uint][]OrderItemView)
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{
			ID:          o.ID,
			UserID:      o.UserID,
			Status:      o.Status,
			TotalPrice:  o.TotalPrice,
			Notes:       o.Notes,
			CreatedAt:   o.CreatedAt,
			CompletedAt: o.CompletedAt,
			Items:       itemsByOrder[o.ID],
		})
	}
	s.cache.Set(key, views, orderListTTL)
	return filterByStatus(views, status), nil
}

func filterByStatus(views []OrderView, status *models.OrderStatus) []OrderView {
	if status == nil {
		return views
	}
	filtered := make([]OrderView, 0, len(views))
	for _, v := range views {
		if v.Status == *status {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
