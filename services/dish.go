package services

import (
	"household-eats-api/cache"
	"household-eats-api/models"

	"gorm.io/gorm"
)

// DishService manages the menu. Writes invalidate the dishes and stats
// prefixes; historical orders are untouched because line items carry
// their own frozen price.
type DishService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDishService(db *gorm.DB, c *cache.Cache) *DishService {
	return &DishService{db: db, cache: c}
}

// DishView is a dish decorated with its rating aggregate.
type DishView struct {
	models.Dish
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int64    `json:"review_count"`
}

// List returns dishes with average rating and review count, optionally
// filtered by category. Unavailable dishes are hidden unless asked for.
func (s *DishService) List(category *string, includeUnavailable bool) ([]DishView, error) {
	key := "dishes:list"
	if category != nil {
		key += ":" + *category
	}
	if includeUnavailable {
		key += ":all"
	}
	if cached, ok := s.cache.Get(key); ok {
		if views, ok := cached.([]DishView); ok {
			return views, nil
		}
	}

	var dishes []models.Dish
	q := s.db.Order("id asc")
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	if !includeUnavailable {
		q = q.Where("is_available = ?", true)
	}
	if err := q.Find(&dishes).Error; err != nil {
		return nil, err
	}

	var ratings []struct {
		DishID      uint
		AvgRating   float64
		ReviewCount int64
	}
	err := s.db.Raw(`
		SELECT dish_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		GROUP BY dish_id`).Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	ratingByDish := make(map[uint]struct {
		avg   float64
		count int64
	})
	for _, r := range ratings {
		ratingByDish[r.DishID] = struct {
			avg   float64
			count int64
		}{roundTo1(r.AvgRating), r.ReviewCount}
	}

	views := make([]DishView, 0, len(dishes))
	for _, d := range dishes {
		view := DishView{Dish: d}
		if r, ok := ratingByDish[d.ID]; ok {
			avg := r.avg
			view.AvgRating = &avg
			view.ReviewCount = r.count
		}
		views = append(views, view)
	}
	s.cache.Set(key, views, cache.DefaultTTL)
	return views, nil
}

// Create adds a dish to the menu.
func (s *DishService) Create(dish *models.Dish) error {
	if dish.Name == "" || dish.Category == "" {
		return ErrMissingField
	}
	if dish.PrepTime == 0 {
		dish.PrepTime = 15
	}
	if err := s.db.Create(dish).Error; err != nil {
		return err
	}
	s.cache.Invalidate("dishes")
	s.cache.Invalidate("stats")
	return nil
}

// Update applies the given column updates to a dish.
func (s *DishService) Update(dishID uint, updates map[string]interface{}) (models.Dish, error) {
	if dishID == 0 {
		return models.Dish{}, ErrMissingField
	}
	var dish models.Dish
	if err := s.db.First(&dish, dishID).Error; err != nil {
		return models.Dish{}, err
	}
	if err := s.db.Model(&dish).Updates(updates).Error; err != nil {
		return models.Dish{}, err
	}
	s.cache.Invalidate("dishes")
	s.cache.Invalidate("cart") // cart listings join live dish fields
	s.cache.Invalidate("stats")
	return dish, nil
}

// Delete removes a dish from the menu. Cart lines still pointing at it
// are skipped at order creation; existing order items keep their frozen
// price and show null dish fields in joins.
func (s *DishService) Delete(dishID uint) error {
	if err := s.db.Delete(&models.Dish{}, dishID).Error; err != nil {
		return err
	}
	s.cache.Invalidate("dishes")
	s.cache.Invalidate("cart")
	s.cache.Invalidate("stats")
	return nil
}
