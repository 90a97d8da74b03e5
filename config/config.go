package config

import (
	"errors"
	"log"
	"os"

	"household-eats-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs admin session tokens — read from env or fallback
var JWTSecret = []byte(GetEnv("JWT_SECRET", "household_eats_super_secret_2025"))

// AdminPasswordKey is the settings row holding the bcrypt hash of the
// admin password.
const AdminPasswordKey = "admin_password_hash"

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	dbPath := GetEnv("DB_PATH", "household_eats.db")
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
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
		log.Fatal("Failed to migrate database:", err)
	}

	if err := seedDefaults(DB); err != nil {
		log.Fatal("Failed to seed defaults:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

// seedDefaults creates the two named household members and the admin
// password hash on first run. The two named users are never deleted.
func seedDefaults(db *gorm.DB) error {
	named := []models.User{
		{Name: GetEnv("FULFILLER_NAME", "Hugo"), Role: models.RoleFulfiller, IsWhitelisted: true},
		{Name: GetEnv("ORDERER_NAME", "Yuge"), Role: models.RoleOrderer, IsWhitelisted: true},
	}
	for _, u := range named {
		var existing models.User
		err := db.Where("role = ?", u.Role).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var setting models.Setting
	err := db.Where("key = ?", AdminPasswordKey).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(GetEnv("ADMIN_PASSWORD", "household-admin")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return db.Create(&models.Setting{Key: AdminPasswordKey, Value: string(hash)}).Error
	}
	return err
}
