package models

import "time"

// CartItem is one line of the single shared household cart. The cart is
// deliberately not scoped per session: every whitelisted member sees and
// orders the same pool of lines. At most one row exists per (user, dish)
// pair; repeated adds increment the quantity instead of duplicating.
type CartItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_dish"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DishID       uint      `json:"dish_id" gorm:"not null;uniqueIndex:idx_cart_user_dish"`
	Dish         Dish      `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Quantity     int       `json:"quantity" gorm:"not null;default:1"`
	SpecialNotes *string   `json:"special_notes"`
	AddedAt      time.Time `json:"added_at" gorm:"autoCreateTime"`
}
