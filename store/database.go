package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentwheels/car-rental-api/models"
)

// DatabaseStore persists state through GORM. Production deployments point
// it at PostgreSQL via DATABASE_URL; without one it falls back to an
// embedded SQLite file, which is also what the tests run against.
type DatabaseStore struct {
	db *gorm.DB
}

// OpenDatabase connects to PostgreSQL when databaseURL is set, otherwise to
// the SQLite file at sqlitePath, and migrates the schema.
func OpenDatabase(databaseURL, sqlitePath string) (*DatabaseStore, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDatabaseStore(db)
}

// NewDatabaseStore wraps an existing GORM connection and migrates the
// schema. Exposed separately so tests can pass an in-memory SQLite handle.
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if err := db.AutoMigrate(&models.Car{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

func (d *DatabaseStore) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := d.db.WithContext(ctx).Order("id").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (d *DatabaseStore) GetCarByVin(ctx context.Context, vin string) (*models.Car, error) {
	var car models.Car
	err := d.db.WithContext(ctx).Where("vin = ?", vin).First(&car).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (d *DatabaseStore) SetCarAvailability(ctx context.Context, vin string, available bool) (bool, error) {
	result := d.db.WithContext(ctx).Model(&models.Car{}).
		Where("vin = ?", vin).
		Update("available", available)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CarTypes and CarBrands order facets by first appearance in the catalog,
// matching the other backends.
func (d *DatabaseStore) CarTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := d.db.WithContext(ctx).Model(&models.Car{}).
		Group("car_type").
		Order("MIN(id)").
		Pluck("car_type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (d *DatabaseStore) CarBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := d.db.WithContext(ctx).Model(&models.Car{}).
		Group("brand").
		Order("MIN(id)").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (d *DatabaseStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := d.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *DatabaseStore) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := d.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *DatabaseStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The conditional flip is the whole availability check: it only
		// matches a bookable car, and the matched row stays write-locked
		// until the transaction commits, so under read committed two
		// concurrent creates on one VIN cannot both get through. A missing
		// car matches nothing and is reported the same way.
		res := tx.Model(&models.Car{}).
			Where("vin = ? AND available = ?", order.Car.VIN, true).
			Update("available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCarUnavailable
		}

		// Explicit max+1 allocation rather than autoincrement so id
		// assignment behaves the same as the other backends.
		var maxID int
		if err := tx.Model(&models.Order{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}
		order.ID = maxID + 1
		order.Status = models.StatusPending
		return tx.Create(order).Error
	})
}

func (d *DatabaseStore) ConfirmOrder(ctx context.Context, id int) error {
	return d.transition(ctx, id, models.StatusConfirmed)
}

func (d *DatabaseStore) CancelOrder(ctx context.Context, id int) error {
	return d.transition(ctx, id, models.StatusCancelled)
}

// transition applies a pending-only status change; cancellation also frees
// the car inside the same transaction.
func (d *DatabaseStore) transition(ctx context.Context, id int, to models.OrderStatus) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.StatusPending || !models.CanTransition(order.Status, to) {
			return ErrOrderNotPending
		}

		// Guarded in case a concurrent transition slipped in between the
		// read above and this update.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}
		if to == models.StatusCancelled {
			return tx.Model(&models.Car{}).
				Where("vin = ?", order.Car.VIN).
				Update("available", true).Error
		}
		return nil
	})
}

func (d *DatabaseStore) SeedCars(ctx context.Context, cars []models.Car) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Car{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(cars) == 0 {
			return nil
		}
		seeded := make([]models.Car, len(cars))
		copy(seeded, cars)
		return tx.Create(&seeded).Error
	})
}

func (d *DatabaseStore) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
