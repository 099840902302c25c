package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahakaal/cafepos/internal/config"
	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey:
		// bill number allocation retries on them.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff accounts
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Item{},
		&entity.ItemSize{},

		// Transactions
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Order{},
		&entity.OrderItem{},

		// Station tickets
		&entity.Recipe{},
		&entity.RecipeItem{},

		// Audit log
		&entity.OrderHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial staff account and, on a fresh
// database, a small starter menu so the till is usable out of the box.
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		var existing entity.User
		if err := db.Where("email = ?", cfg.Admin.Email).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			name := cfg.Admin.Name
			if name == "" {
				name = "Cafe Admin"
			}
			admin := entity.User{
				Name:     name,
				Email:    cfg.Admin.Email,
				Password: string(hashed),
				IsStaff:  true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("Warning: failed to create admin user: %v", err)
			} else {
				log.Printf("Admin user created: %s", cfg.Admin.Email)
			}
		}
	}

	var categoryCount int64
	if err := db.Model(&entity.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount > 0 {
		return nil
	}

	log.Println("Seeding starter menu...")

	menu := []struct {
		category string
		item     string
		station  enum.Station
		prices   map[enum.Size]string
	}{
		{"Coffee", "Espresso", enum.StationBarista, map[enum.Size]string{enum.SizeSmall: "90.00", enum.SizeMedium: "120.00"}},
		{"Coffee", "Latte", enum.StationBarista, map[enum.Size]string{enum.SizeSmall: "120.00", enum.SizeMedium: "150.00", enum.SizeLarge: "180.00"}},
		{"Coffee", "Cappuccino", enum.StationBarista, map[enum.Size]string{enum.SizeMedium: "140.00", enum.SizeLarge: "170.00"}},
		{"Snacks", "Croissant", enum.StationKitchen, map[enum.Size]string{enum.SizeSmall: "90.00"}},
		{"Snacks", "Grilled Sandwich", enum.StationKitchen, map[enum.Size]string{enum.SizeMedium: "150.00", enum.SizeLarge: "190.00"}},
	}

	categories := map[string]*entity.Category{}
	for _, m := range menu {
		cat, ok := categories[m.category]
		if !ok {
			cat = &entity.Category{Name: m.category, IsActive: true}
			if err := db.Create(cat).Error; err != nil {
				return err
			}
			categories[m.category] = cat
		}

		item := entity.Item{
			CategoryID:  cat.ID,
			Name:        m.item,
			Station:     m.station,
			IsAvailable: true,
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		for size, price := range m.prices {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return err
			}
			s := entity.ItemSize{ItemID: item.ID, Size: size, Price: p}
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Starter menu seeded")
	return nil
}
