package services

import (
	"math"
	"time"

	"household-eats-api/cache"
	"household-eats-api/models"

	"gorm.io/gorm"
)

const statsTTL = time.Minute

// Window restricts the spice trend to a trailing period.
type Window string

const (
	WindowAll     Window = "all"
	WindowMonth   Window = "1m"
	Window3Months Window = "3m"
	Window6Months Window = "6m"
)

func (w Window) cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	case Window3Months:
		return now.AddDate(0, -3, 0), true
	case Window6Months:
		return now.AddDate(0, -6, 0), true
	default:
		return time.Time{}, false
	}
}

// StatsService computes derived facts by scanning orders, reviews and
// dishes on demand. Pure reads; the whole composite is cached under the
// stats prefix with one shared TTL, and any write to orders, reviews or
// dishes invalidates the prefix wholesale.
type StatsService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewStatsService(db *gorm.DB, c *cache.Cache) *StatsService {
	return &StatsService{db: db, cache: c}
}

type DishCount struct {
	DishID       uint    `json:"dish_id"`
	DishName     *string `json:"dish_name"`
	TotalOrdered int64   `json:"total_ordered"`
}

type RatedDish struct {
	DishID      uint    `json:"dish_id"`
	DishName    *string `json:"dish_name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

type UserFavorite struct {
	UserID       uint    `json:"user_id"`
	UserName     string  `json:"user_name"`
	DishName     *string `json:"dish_name"`
	TotalOrdered int64   `json:"total_ordered"`
}

type CategoryCount struct {
	Category *string `json:"category"`
	Count    int64   `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"` // 0=Sunday .. 6=Saturday
	Count int64  `json:"count"`
}

type SpicePoint struct {
	OrderID  uint      `json:"order_id"`
	UserID   uint      `json:"user_id"`
	UserName *string   `json:"user_name"`
	Date     time.Time `json:"date"`
	AvgSpice float64   `json:"avg_spice"`
}

type Summary struct {
	TotalOrders       int64           `json:"total_orders"`
	CompletedOrders   int64           `json:"completed_orders"`
	TotalDishesServed int64           `json:"total_dishes_served"`
	AverageRating     float64         `json:"average_rating"`
	TopDishes         []DishCount     `json:"top_dishes"`
	BestRated         *RatedDish      `json:"best_rated"`
	WorstRated        *RatedDish      `json:"worst_rated"`
	Favorites         []UserFavorite  `json:"favorites"`
	CategoryStats     []CategoryCount `json:"category_stats"`
	OrdersByDay       []DayCount      `json:"orders_by_day"`
	SpiceTrend        []SpicePoint    `json:"spice_trend"`
}

// Summary computes the full derived-statistics object for the given
// trailing window (the window restricts only the spice trend). Ratings
// tie-break deterministically on the lowest dish id.
func (s *StatsService) Summary(window Window) (Summary, error) {
	key := "stats:summary:" + string(window)
	if cached, ok := s.cache.Get(key); ok {
		if summary, ok := cached.(Summary); ok {
			return summary, nil
		}
	}

	var summary Summary

	if err := s.db.Model(&models.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return Summary{}, err
	}
	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.StatusCompleted).
		Count(&summary.CompletedOrders).Error; err != nil {
		return Summary{}, err
	}

	// Dish units served: completed orders only
	if err := s.db.Raw(`
		SELECT COALESCE(SUM(order_items.quantity), 0)
		FROM order_items
		JOIN orders ON orders.id = order_items.order_id
		WHERE orders.status = ?`, models.StatusCompleted).
		Scan(&summary.TotalDishesServed).Error; err != nil {
		return Summary{}, err
	}

	var avgRating float64
	if err := s.db.Raw(`SELECT COALESCE(AVG(rating), 0) FROM reviews`).
		Scan(&avgRating).Error; err != nil {
		return Summary{}, err
	}
	summary.AverageRating = roundTo1(avgRating)

	if err := s.db.Raw(`
		SELECT order_items.dish_id, dishes.name AS dish_name,
		       SUM(order_items.quantity) AS total_ordered
		FROM order_items
		LEFT JOIN dishes ON dishes.id = order_items.dish_id
		GROUP BY order_items.dish_id
		ORDER BY total_ordered DESC, order_items.dish_id ASC
		LIMIT 5`).Scan(&summary.TopDishes).Error; err != nil {
		return Summary{}, err
	}

	best, err := s.ratedExtreme("DESC")
	if err != nil {
		return Summary{}, err
	}
	summary.BestRated = best
	worst, err := s.ratedExtreme("ASC")
	if err != nil {
		return Summary{}, err
	}
	summary.WorstRated = worst

	favorites, err := s.favorites()
	if err != nil {
		return Summary{}, err
	}
	summary.Favorites = favorites

	if err := s.db.Raw(`
		SELECT dishes.category, SUM(order_items.quantity) AS count
		FROM order_items
		LEFT JOIN dishes ON dishes.id = order_items.dish_id
		GROUP BY dishes.category`).Scan(&summary.CategoryStats).Error; err != nil {
		return Summary{}, err
	}

	if err := s.db.Raw(`
		SELECT strftime('%w', created_at) AS day, COUNT(*) AS count
		FROM orders
		GROUP BY strftime('%w', created_at)`).Scan(&summary.OrdersByDay).Error; err != nil {
		return Summary{}, err
	}

	trend, err := s.spiceTrend(window)
	if err != nil {
		return Summary{}, err
	}
	summary.SpiceTrend = trend

	s.cache.Set(key, summary, statsTTL)
	return summary, nil
}

// ratedExtreme picks the best (DESC) or worst (ASC) rated dish. Ties on
// the average rating resolve to the lowest dish id.
func (s *StatsService) ratedExtreme(direction string) (*RatedDish, error) {
	var rows []RatedDish
	err := s.db.Raw(`
		SELECT reviews.dish_id, dishes.name AS dish_name,
		       AVG(reviews.rating) AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		LEFT JOIN dishes ON dishes.id = reviews.dish_id
		GROUP BY reviews.dish_id
		ORDER BY avg_rating ` + direction + `, reviews.dish_id ASC
		LIMIT 1`).Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	rows[0].AvgRating = roundTo1(rows[0].AvgRating)
	return &rows[0], nil
}

// favorites finds the most-ordered dish for each of the two named
// household members, scoped to orders they initiated.
func (s *StatsService) favorites() ([]UserFavorite, error) {
	var namedUsers []models.User
	err := s.db.Where("role IN ?", []models.UserRole{models.RoleFulfiller, models.RoleOrderer}).
		Order("id asc").Find(&namedUsers).Error
	if err != nil {
		return nil, err
	}

	favorites := make([]UserFavorite, 0, len(namedUsers))
	for _, user := range namedUsers {
		var rows []struct {
			DishName     *string
			TotalOrdered int64
		}
		err := s.db.Raw(`
			SELECT dishes.name AS dish_name, SUM(order_items.quantity) AS total_ordered
			FROM order_items
			JOIN orders ON orders.id = order_items.order_id
			LEFT JOIN dishes ON dishes.id = order_items.dish_id
			WHERE orders.user_id = ?
			GROUP BY order_items.dish_id
			ORDER BY total_ordered DESC, order_items.dish_id ASC
			LIMIT 1`, user.ID).Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		fav := UserFavorite{UserID: user.ID, UserName: user.Name}
		if len(rows) > 0 {
			fav.DishName = rows[0].DishName
			fav.TotalOrdered = rows[0].TotalOrdered
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

// spiceTrend returns the per-order average spice level over time,
// bucketed by the initiating member, optionally cut to a trailing window.
func (s *StatsService) spiceTrend(window Window) ([]SpicePoint, error) {
	query := `
		SELECT orders.id AS order_id, orders.user_id, users.name AS user_name,
		       orders.created_at AS date,
		       COALESCE(AVG(dishes.spice_level), 0) AS avg_spice
		FROM orders
		LEFT JOIN order_items ON order_items.order_id = orders.id
		LEFT JOIN dishes ON dishes.id = order_items.dish_id
		LEFT JOIN users ON users.id = orders.user_id`
	args := []interface{}{}
	if cutoff, ok := window.cutoff(time.Now()); ok {
		query += ` WHERE orders.created_at >= ?`
		args = append(args, cutoff)
	}
	query += `
		GROUP BY orders.id
		ORDER BY orders.created_at ASC, orders.id ASC`

	var points []SpicePoint
	if err := s.db.Raw(query, args...).Scan(&points).Error; err != nil {
		return nil, err
	}
	for i := range points {
		points[i].AvgSpice = roundTo1(points[i].AvgSpice)
	}
	return points, nil
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
