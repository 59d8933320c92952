package store

import (
	"github.com/rentwheels/car-rental-api/models"
)

// state is the full catalog + order book snapshot the memory and file
// backends operate on. All methods mutate in place; callers are responsible
// for serializing access and for persisting the result.
type state struct {
	Cars   []models.Car
	Orders []models.Order
}

func (s *state) carIndex(vin string) int {
	for i := range s.Cars {
		if s.Cars[i].VIN == vin {
			return i
		}
	}
	return -1
}

func (s *state) orderIndex(id int) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *state) getCar(vin string) (*models.Car, error) {
	i := s.carIndex(vin)
	if i < 0 {
		return nil, ErrCarNotFound
	}
	car := s.Cars[i]
	return &car, nil
}

func (s *state) setAvailability(vin string, available bool) bool {
	i := s.carIndex(vin)
	if i < 0 {
		return false
	}
	s.Cars[i].Available = available
	return true
}

// distinctField collects unique values in first-appearance order, which
// keeps the facet lists deterministic within a process run.
func (s *state) distinctField(field func(models.Car) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0, len(s.Cars))
	for _, car := range s.Cars {
		v := field(car)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func (s *state) getOrder(id int) (*models.Order, error) {
	i := s.orderIndex(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	order := s.Orders[i]
	return &order, nil
}

// createOrder allocates the next id, appends the order as pending and flips
// the car unavailable. The availability check and both writes happen on the
// same snapshot, so a persisted state is never half-updated.
func (s *state) createOrder(order *models.Order) error {
	i := s.carIndex(order.Car.VIN)
	if i < 0 || !s.Cars[i].Available {
		return ErrCarUnavailable
	}

	order.ID = nextOrderID(s.Orders)
	order.Status = models.StatusPending
	s.Cars[i].Available = false
	s.Orders = append(s.Orders, *order)
	return nil
}

// transitionOrder moves a pending order to the target status. Cancelling
// also restores the car's availability; a car deleted from the catalog in
// the meantime is tolerated, the order transition still applies.
func (s *state) transitionOrder(id int, to models.OrderStatus) error {
	i := s.orderIndex(id)
	if i < 0 {
		return ErrOrderNotFound
	}
	if s.Orders[i].Status != models.StatusPending {
		return ErrOrderNotPending
	}
	if !models.CanTransition(s.Orders[i].Status, to) {
		return ErrOrderNotPending
	}

	s.Orders[i].Status = to
	if to == models.StatusCancelled {
		s.setAvailability(s.Orders[i].Car.VIN, true)
	}
	return nil
}

// copyCars and copyOrders hand out snapshots so callers never alias the
// backing slices.
func copyCars(cars []models.Car) []models.Car {
	out := make([]models.Car, len(cars))
	copy(out, cars)
	return out
}

func copyOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	return out
}
