package services

import (
	"time"

	"household-eats-api/cache"
	"household-eats-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cartListTTL = 30 * time.Second

// CartService manages the single shared household cart. Every whitelisted
// member mutates the same pool of lines; there is no per-user cart
// isolation and there must not be.
type CartService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCartService(db *gorm.DB, c *cache.Cache) *CartService {
	return &CartService{db: db, cache: c}
}

// CartLine is a cart entry joined with its dish and contributor. Joined
// fields are pointers: a dish or user deleted out from under the cart
// yields nulls, never a dropped row.
type CartLine struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	DishID        uint      `json:"dish_id"`
	Quantity      int       `json:"quantity"`
	SpecialNotes  *string   `json:"special_notes"`
	AddedAt       time.Time `json:"added_at"`
	DishName      *string   `json:"dish_name"`
	DishPrice     *float64  `json:"dish_price"`
	DishThumbnail *string   `json:"dish_thumbnail"`
	UserName      *string   `json:"user_name"`
}

// AddItem inserts a cart line for (userID, dishID), or increments the
// existing line's quantity. The upsert is a single atomic statement on
// the (user_id, dish_id) unique index, so two members adding the same
// dish concurrently cannot lose an update.
func (s *CartService) AddItem(userID, dishID uint, quantity int, notes *string) error {
	if userID == 0 || dishID == 0 {
		return ErrMissingField
	}
	if quantity <= 0 {
		quantity = 1
	}
	item := models.CartItem{
		UserID:       userID,
		DishID:       dishID,
		Quantity:     quantity,
		SpecialNotes: notes,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "dish_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return err
	}
	s.cache.Invalidate("cart")
	return nil
}

// SetQuantity overwrites a line's quantity; zero or negative means remove.
func (s *CartService) SetQuantity(cartItemID uint, quantity int) error {
	if cartItemID == 0 {
		return ErrMissingField
	}
	var err error
	if quantity <= 0 {
		err = s.db.Delete(&models.CartItem{}, cartItemID).Error
	} else {
		err = s.db.Model(&models.CartItem{}).Where("id = ?", cartItemID).
			Update("quantity", quantity).Error
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate("cart")
	return nil
}

// Remove deletes a line unconditionally; a missing id is not an error.
func (s *CartService) Remove(cartItemID uint) error {
	if err := s.db.Delete(&models.CartItem{}, cartItemID).Error; err != nil {
		return err
	}
	s.cache.Invalidate("cart")
	return nil
}

// List returns every line of the shared cart with dish and contributor
// details, read-through cached for shared visibility across members.
func (s *CartService) List() ([]CartLine, error) {
	const key = "cart:list"
	if cached, ok := s.cache.Get(key); ok {
		if lines, ok := cached.([]CartLine); ok {
			return lines, nil
		}
	}

	lines := []CartLine{}
	err := s.db.Table("cart_items").
		Select(`cart_items.id, cart_items.user_id, cart_items.dish_id,
			cart_items.quantity, cart_items.special_notes, cart_items.added_at,
			dishes.name AS dish_name, dishes.price AS dish_price,
			dishes.thumbnail_url AS dish_thumbnail, users.name AS user_name`).
		Joins("LEFT JOIN dishes ON dishes.id = cart_items.dish_id").
		Joins("LEFT JOIN users ON users.id = cart_items.user_id").
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, lines, cartListTTL)
	return lines, nil
}

// ClearAll empties the shared cart. Besides the explicit clear endpoint,
// order creation drains the cart through its own transaction.
func (s *CartService) ClearAll() error {
	err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return err
	}
	s.cache.Invalidate("cart")
	return nil
}
