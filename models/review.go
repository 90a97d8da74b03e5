package models

import "time"

// Review holds a 1-5 rating for a dish, optionally tied to the order it
// was eaten on. At most one review exists per (user, dish, order) triple;
// resubmitting updates the existing row.
type Review struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"not null"`
	User      User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DishID    uint          `json:"dish_id" gorm:"not null"`
	Dish      Dish          `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	OrderID   *uint         `json:"order_id"`
	Rating    int           `json:"rating" gorm:"not null"`
	Comment   *string       `json:"comment"`
	Photos    []ReviewPhoto `json:"photos,omitempty" gorm:"foreignKey:ReviewID"`
	CreatedAt time.Time     `json:"created_at"`
}

// ReviewPhoto belongs to exactly one review and is deleted with it.
type ReviewPhoto struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	ReviewID     uint    `json:"review_id" gorm:"not null"`
	ImageURL     string  `json:"image_url" gorm:"not null"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
