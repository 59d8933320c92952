package store

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/utils"
)

// FileStore persists state as two JSON documents: a bare array of cars and
// an {"orders": [...]} wrapper, both rewritten wholesale on every mutation.
// Every operation reads the current files, applies the change in memory and
// writes the result back via temp-file-and-rename, all under one mutex.
type FileStore struct {
	mu         sync.Mutex
	carsPath   string
	ordersPath string
}

// ordersDocument matches the on-disk layout of the orders file.
type ordersDocument struct {
	Orders []models.Order `json:"orders"`
}

// NewFileStore returns a store backed by the given JSON file paths. Missing
// files are treated as empty collections and created on first write.
func NewFileStore(carsPath, ordersPath string) *FileStore {
	return &FileStore{carsPath: carsPath, ordersPath: ordersPath}
}

// load reads both documents into a fresh state snapshot.
func (f *FileStore) load() (*state, error) {
	s := &state{Cars: []models.Car{}, Orders: []models.Order{}}

	if err := utils.ReadJSONFile(f.carsPath, &s.Cars); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var doc ordersDocument
	if err := utils.ReadJSONFile(f.ordersPath, &doc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else {
		s.Orders = doc.Orders
	}
	return s, nil
}

// saveCars and saveOrders rewrite one document each. Mutations that touch
// both write the restrictive side first: CreateOrder persists the held car
// before the new order, CancelOrder persists the cancelled order before
// freeing the car. A crash between the two renames can then leave a car
// unavailable with no active order, which blocks that car until the next
// cancel but can never book it twice.
func (f *FileStore) saveCars(s *state) error {
	return utils.WriteJSONFileAtomic(f.carsPath, s.Cars)
}

func (f *FileStore) saveOrders(s *state) error {
	return utils.WriteJSONFileAtomic(f.ordersPath, ordersDocument{Orders: s.Orders})
}

func (f *FileStore) ListCars(ctx context.Context) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.Cars, nil
}

func (f *FileStore) GetCarByVin(ctx context.Context, vin string) (*models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.getCar(vin)
}

func (f *FileStore) SetCarAvailability(ctx context.Context, vin string, available bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return false, err
	}
	if !s.setAvailability(vin, available) {
		return false, nil
	}
	return true, f.saveCars(s)
}

func (f *FileStore) CarTypes(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.distinctField(func(c models.Car) string { return c.CarType }), nil
}

func (f *FileStore) CarBrands(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.distinctField(func(c models.Car) string { return c.Brand }), nil
}

func (f *FileStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.Orders, nil
}

func (f *FileStore) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return nil, err
	}
	return s.getOrder(id)
}

func (f *FileStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return err
	}
	prevCars := copyCars(s.Cars)
	if err := s.createOrder(order); err != nil {
		return err
	}
	if err := f.saveCars(s); err != nil {
		return err
	}
	if err := f.saveOrders(s); err != nil {
		// Best effort: release the car again so a failed create does not
		// leave it held with no order on disk.
		f.saveCars(&state{Cars: prevCars})
		return err
	}
	return nil
}

func (f *FileStore) ConfirmOrder(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return err
	}
	if err := s.transitionOrder(id, models.StatusConfirmed); err != nil {
		return err
	}
	return f.saveOrders(s)
}

func (f *FileStore) CancelOrder(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return err
	}
	prevOrders := copyOrders(s.Orders)
	if err := s.transitionOrder(id, models.StatusCancelled); err != nil {
		return err
	}
	if err := f.saveOrders(s); err != nil {
		return err
	}
	if err := f.saveCars(s); err != nil {
		// Best effort: revert the cancellation so the order book and the
		// car's availability stay consistent on disk.
		f.saveOrders(&state{Orders: prevOrders})
		return err
	}
	return nil
}

func (f *FileStore) SeedCars(ctx context.Context, cars []models.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	if err != nil {
		return err
	}
	if len(s.Cars) > 0 {
		return nil
	}
	s.Cars = cars
	return f.saveCars(s)
}

func (f *FileStore) Close() error {
	return nil
}
