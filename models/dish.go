package models

import "time"

type Dish struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description" gorm:"not null;default:''"`
	Price         float64   `json:"price" gorm:"not null"` // zero means a free household meal
	Category      string    `json:"category" gorm:"not null"`
	ImageURL      *string   `json:"image_url"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	IsAvailable   bool      `json:"is_available" gorm:"not null;default:true"`
	IsRecommended bool      `json:"is_recommended" gorm:"not null;default:false"`
	SpiceLevel    int       `json:"spice_level" gorm:"not null;default:0"` // 0-5
	PrepTime      int       `json:"prep_time" gorm:"not null;default:15"`  // minutes
	CreatedAt     time.Time `json:"created_at"`
}
