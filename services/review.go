package services

import (
	"errors"
	"fmt"
	"time"

	"household-eats-api/cache"
	"household-eats-api/models"

	"gorm.io/gorm"
)

const reviewListTTL = time.Minute

// ReviewService handles dish ratings and their photos.
type ReviewService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReviewService(db *gorm.DB, c *cache.Cache) *ReviewService {
	return &ReviewService{db: db, cache: c}
}

// PhotoInput is an uploaded photo reference attached to a new review.
type PhotoInput struct {
	ImageURL     string  `json:"image_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// ReviewView is a review joined with reviewer and dish names.
type ReviewView struct {
	ID        uint                 `json:"id"`
	UserID    uint                 `json:"user_id"`
	DishID    uint                 `json:"dish_id"`
	OrderID   *uint                `json:"order_id"`
	Rating    int                  `json:"rating"`
	Comment   *string              `json:"comment"`
	CreatedAt time.Time            `json:"created_at"`
	UserName  *string              `json:"user_name"`
	DishName  *string              `json:"dish_name"`
	Photos    []models.ReviewPhoto `json:"photos" gorm:"-"`
}

func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// Submit creates a review, or updates the existing one when the same
// (user, dish, order) triple was already reviewed. A second submission
// never produces a second row.
func (s *ReviewService) Submit(userID, dishID uint, orderID *uint, rating int, comment *string, photos []PhotoInput) (models.Review, error) {
	if userID == 0 || dishID == 0 || rating == 0 {
		return models.Review{}, ErrMissingField
	}
	rating = clampRating(rating)

	if orderID != nil {
		var existing models.Review
		err := s.db.Where("user_id = ? AND dish_id = ? AND order_id = ?", userID, dishID, *orderID).
			First(&existing).Error
		if err == nil {
			updates := map[string]interface{}{"rating": rating, "comment": comment}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				return models.Review{}, err
			}
			existing.Rating = rating
			existing.Comment = comment
			s.cache.Invalidate("reviews")
			s.cache.Invalidate("stats")
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, err
		}
	}

	review := models.Review{
		UserID:  userID,
		DishID:  dishID,
		OrderID: orderID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return models.Review{}, err
	}
	for _, photo := range photos {
		p := models.ReviewPhoto{
			ReviewID:     review.ID,
			ImageURL:     photo.ImageURL,
			ThumbnailURL: photo.ThumbnailURL,
		}
		if err := s.db.Create(&p).Error; err != nil {
			return models.Review{}, err
		}
		review.Photos = append(review.Photos, p)
	}

	s.cache.Invalidate("reviews")
	s.cache.Invalidate("stats")
	return review, nil
}

// List returns reviews newest-first with photos attached, optionally
// restricted to one dish.
func (s *ReviewService) List(dishID *uint) ([]ReviewView, error) {
	key := "reviews:list"
	if dishID != nil {
		key = fmt.Sprintf("reviews:dish:%d", *dishID)
	}
	if cached, ok := s.cache.Get(key); ok {
		if views, ok := cached.([]ReviewView); ok {
			return views, nil
		}
	}

	views := []ReviewView{}
	q := s.db.Table("reviews").
		Select(`reviews.id, reviews.user_id, reviews.dish_id, reviews.order_id,
			reviews.rating, reviews.comment, reviews.created_at,
			users.name AS user_name, dishes.name AS dish_name`).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Joins("LEFT JOIN dishes ON dishes.id = reviews.dish_id").
		Order("reviews.created_at desc, reviews.id desc")
	if dishID != nil {
		q = q.Where("reviews.dish_id = ?", *dishID)
	}
	if err := q.Scan(&views).Error; err != nil {
		return nil, err
	}

	for i := range views {
		var photos []models.ReviewPhoto
		if err := s.db.Where("review_id = ?", views[i].ID).Find(&photos).Error; err != nil {
			return nil, err
		}
		views[i].Photos = photos
	}
	s.cache.Set(key, views, reviewListTTL)
	return views, nil
}

// Delete removes a review and its photos; missing ids are a no-op.
func (s *ReviewService) Delete(reviewID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).
			Delete(&models.ReviewPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Review{}, reviewID).Error
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate("reviews")
	s.cache.Invalidate("stats")
	return nil
}
