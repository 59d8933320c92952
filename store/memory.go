package store

import (
	"context"
	"sync"

	"github.com/rentwheels/car-rental-api/models"
)

// MemoryStore keeps the catalog and order book in process memory. It is the
// fallback for deployments without a writable filesystem or a database:
// single-instance and non-durable, but safe under concurrent requests.
type MemoryStore struct {
	mu    sync.RWMutex
	state state
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListCars(ctx context.Context) ([]models.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyCars(m.state.Cars), nil
}

func (m *MemoryStore) GetCarByVin(ctx context.Context, vin string) (*models.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.getCar(vin)
}

func (m *MemoryStore) SetCarAvailability(ctx context.Context, vin string, available bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.setAvailability(vin, available), nil
}

func (m *MemoryStore) CarTypes(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.distinctField(func(c models.Car) string { return c.CarType }), nil
}

func (m *MemoryStore) CarBrands(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.distinctField(func(c models.Car) string { return c.Brand }), nil
}

func (m *MemoryStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyOrders(m.state.Orders), nil
}

func (m *MemoryStore) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.getOrder(id)
}

func (m *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.createOrder(order)
}

func (m *MemoryStore) ConfirmOrder(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.transitionOrder(id, models.StatusConfirmed)
}

func (m *MemoryStore) CancelOrder(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.transitionOrder(id, models.StatusCancelled)
}

func (m *MemoryStore) SeedCars(ctx context.Context, cars []models.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.state.Cars) > 0 {
		return nil
	}
	m.state.Cars = copyCars(cars)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
