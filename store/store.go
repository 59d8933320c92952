package store

import (
	"context"
	"errors"

	"github.com/rentwheels/car-rental-api/models"
)

// Business-rule failures returned by stores. Handlers match these with
// errors.Is and map them to 4xx responses; anything else is a storage
// failure and surfaces as a 500.
var (
	// ErrCarNotFound is returned when a VIN lookup misses.
	ErrCarNotFound = errors.New("car not found")
	// ErrCarUnavailable is returned when an order targets a car that is
	// missing from the catalog or already held by an active order.
	ErrCarUnavailable = errors.New("car not available")
	// ErrOrderNotFound is returned when an order id lookup misses.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPending is returned when a transition requires a pending
	// order and the order is in any other state.
	ErrOrderNotPending = errors.New("order not pending")
)

// Store is the persistence boundary for the catalog and the order book.
// Implementations are selected once at startup and must keep the core
// invariant: at most one active (pending or confirmed) order per VIN, with
// the car's Available flag as the single source of truth.
//
// CreateOrder and CancelOrder touch an order and its car's availability
// together; implementations must apply both changes atomically with respect
// to every other Store call.
type Store interface {
	ListCars(ctx context.Context) ([]models.Car, error)
	// GetCarByVin looks up a car by exact, case-sensitive VIN.
	GetCarByVin(ctx context.Context, vin string) (*models.Car, error)
	// SetCarAvailability updates the availability flag and reports whether
	// a matching car was found. The update is idempotent.
	SetCarAvailability(ctx context.Context, vin string, available bool) (bool, error)
	// CarTypes and CarBrands return the unique facet values across the
	// catalog in a deterministic order.
	CarTypes(ctx context.Context) ([]string, error)
	CarBrands(ctx context.Context) ([]string, error)

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id int) (*models.Order, error)
	// CreateOrder persists the order with the next free id, sets its status
	// to pending and marks its car unavailable, all atomically. Fails with
	// ErrCarUnavailable when the car is missing or already booked.
	CreateOrder(ctx context.Context, order *models.Order) error
	// ConfirmOrder transitions a pending order to confirmed. Availability
	// is untouched; the car was already held at creation time.
	ConfirmOrder(ctx context.Context, id int) error
	// CancelOrder transitions a pending order to cancelled and restores the
	// car's availability atomically.
	CancelOrder(ctx context.Context, id int) error

	// SeedCars loads the fixture catalog. It is a no-op when the catalog
	// already holds cars.
	SeedCars(ctx context.Context, cars []models.Car) error
	Close() error
}

// nextOrderID allocates the next order id: max existing id + 1, or 1 for an
// empty order book. Ids of cancelled and completed orders stay reserved.
func nextOrderID(orders []models.Order) int {
	max := 0
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
