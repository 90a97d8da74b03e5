package handlers

import (
	"household-eats-api/cache"
	"household-eats-api/services"

	"gorm.io/gorm"
)

// Shared service instances, wired once at startup.
var (
	Cart    *services.CartService
	Orders  *services.OrderService
	Reviews *services.ReviewService
	Dishes  *services.DishService
	Stats   *services.StatsService
)

// Init wires the service layer. The cache is constructed once per process
// and injected everywhere; there is exactly one instance behind every
// read-through path.
func Init(db *gorm.DB, c *cache.Cache, notifier *services.Notifier) {
	Cart = services.NewCartService(db, c)
	Orders = services.NewOrderService(db, c, notifier)
	Reviews = services.NewReviewService(db, c)
	Dishes = services.NewDishService(db, c)
	Stats = services.NewStatsService(db, c)
}
