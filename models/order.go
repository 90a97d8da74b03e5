package models

import "time"

// OrderStatus represents all possible states of a household order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is immutable once created except for Status and CompletedAt.
// TotalPrice is fixed at creation time and never recomputed from
// current dish prices.
type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null"`
	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice  float64     `json:"total_price" gorm:"not null"`
	Notes       *string     `json:"notes"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

// OrderItem is created only as part of order creation and never mutated.
// PriceAtOrder is the dish price frozen at order time, decoupled from the
// dish's live price so historical orders keep their value.
type OrderItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      uint    `json:"order_id" gorm:"not null"`
	DishID       uint    `json:"dish_id" gorm:"not null"`
	Dish         Dish    `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Quantity     int     `json:"quantity" gorm:"not null"`
	PriceAtOrder float64 `json:"price_at_order" gorm:"not null"`
	SpecialNotes *string `json:"special_notes"`
	AddedBy      *uint   `json:"added_by"` // contributing user
}
