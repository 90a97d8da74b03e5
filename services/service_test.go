package services

import (
	"path/filepath"
	"testing"

	"household-eats-api/cache"
	"household-eats-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles a throwaway database with one shared cache instance,
// mirroring the process-wide wiring in main.
type testEnv struct {
	db      *gorm.DB
	cache   *cache.Cache
	cart    *CartService
	orders  *OrderService
	reviews *ReviewService
	dishes  *DishService
	stats   *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewPhoto{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	c := cache.New()
	return &testEnv{
		db:      db,
		cache:   c,
		cart:    NewCartService(db, c),
		orders:  NewOrderService(db, c, NewNotifier("")),
		reviews: NewReviewService(db, c),
		dishes:  NewDishService(db, c),
		stats:   NewStatsService(db, c),
	}
}

func (e *testEnv) seedUser(t *testing.T, name string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{Name: name, Role: role, IsWhitelisted: true}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) seedDish(t *testing.T, name string, price float64, category string, spice int) models.Dish {
	t.Helper()
	dish := models.Dish{
		Name:        name,
		Price:       price,
		Category:    category,
		SpiceLevel:  spice,
		IsAvailable: true,
		PrepTime:    15,
	}
	if err := e.db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish %s: %v", name, err)
	}
	return dish
}

// placeOrder creates an order straight from the given (dish, quantity)
// pairs on behalf of the user.
func (e *testEnv) placeOrder(t *testing.T, user models.User, lines ...OrderLineInput) models.Order {
	t.Helper()
	order, err := e.orders.Create(user.ID, nil, lines)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

// completeOrder walks an order through the full legal pipeline.
func (e *testEnv) completeOrder(t *testing.T, orderID uint) {
	t.Helper()
	for _, status := range []models.OrderStatus{models.StatusCooking, models.StatusReady, models.StatusCompleted} {
		if _, err := e.orders.Transition(orderID, status); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}
}
