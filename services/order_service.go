package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/store"
)

// ValidationError reports malformed reservation input. It is a business
// failure, never a storage one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CreateOrderInput carries a reservation request into the lifecycle manager.
type CreateOrderInput struct {
	Customer     models.Customer
	VIN          string
	StartDate    string
	RentalPeriod int
}

// OrderService is the order lifecycle manager. It owns order creation and
// the pending -> confirmed / pending -> cancelled transitions; the
// availability invariant itself is enforced atomically by the store.
type OrderService struct {
	store store.Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewOrderService creates an order service over the given store
func NewOrderService(st store.Store, log *zap.SugaredLogger) *OrderService {
	return &OrderService{store: st, log: log, now: time.Now}
}

// Create validates the request, prices it against the car's daily rate and
// persists the new pending order together with the availability flip.
// Returns store.ErrCarUnavailable when the car is missing or already booked.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateCreateInput(&in); err != nil {
		return nil, err
	}

	car, err := s.store.GetCarByVin(ctx, in.VIN)
	if err != nil {
		if err == store.ErrCarNotFound {
			return nil, store.ErrCarUnavailable
		}
		s.log.Errorw("failed to load car for order", "vin", in.VIN, "error", err)
		return nil, err
	}
	if !car.Available {
		return nil, store.ErrCarUnavailable
	}

	order := &models.Order{
		Customer: in.Customer,
		Car:      models.CarRef{VIN: in.VIN},
		Rental: models.Rental{
			StartDate:    in.StartDate,
			RentalPeriod: in.RentalPeriod,
			TotalPrice:   car.PricePerDay * float64(in.RentalPeriod),
			OrderDate:    s.now().Format("2006-01-02"),
		},
		Status: models.StatusPending,
	}

	// The store re-checks availability inside its own critical section, so
	// two racing creates on the same VIN cannot both succeed.
	if err := s.store.CreateOrder(ctx, order); err != nil {
		if err != store.ErrCarUnavailable {
			s.log.Errorw("failed to create order", "vin", in.VIN, "error", err)
		}
		return nil, err
	}

	s.log.Infow("order created",
		"order_id", order.ID,
		"vin", order.Car.VIN,
		"total_price", order.Rental.TotalPrice,
	)
	return order, nil
}

// Confirm transitions a pending order to confirmed. The car stays
// unavailable; it was already held at creation time.
func (s *OrderService) Confirm(ctx context.Context, id int) error {
	if err := s.store.ConfirmOrder(ctx, id); err != nil {
		if err != store.ErrOrderNotFound && err != store.ErrOrderNotPending {
			s.log.Errorw("failed to confirm order", "order_id", id, "error", err)
		}
		return err
	}
	s.log.Infow("order confirmed", "order_id", id)
	return nil
}

// Cancel transitions a pending order to cancelled and makes its car
// bookable again. Confirmed orders cannot be cancelled.
func (s *OrderService) Cancel(ctx context.Context, id int) error {
	if err := s.store.CancelOrder(ctx, id); err != nil {
		if err != store.ErrOrderNotFound && err != store.ErrOrderNotPending {
			s.log.Errorw("failed to cancel order", "order_id", id, "error", err)
		}
		return err
	}
	s.log.Infow("order cancelled", "order_id", id)
	return nil
}

// List returns every order, including cancelled and completed ones.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		s.log.Errorw("failed to list orders", "error", err)
	}
	return orders, err
}

func validateCreateInput(in *CreateOrderInput) error {
	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.PhoneNumber = strings.TrimSpace(in.Customer.PhoneNumber)
	in.Customer.Email = strings.TrimSpace(in.Customer.Email)
	in.Customer.DriversLicenseNumber = strings.TrimSpace(in.Customer.DriversLicenseNumber)
	in.VIN = strings.TrimSpace(in.VIN)
	in.StartDate = strings.TrimSpace(in.StartDate)

	switch {
	case in.Customer.Name == "":
		return &ValidationError{Field: "customer.name", Message: "is required"}
	case in.Customer.PhoneNumber == "":
		return &ValidationError{Field: "customer.phoneNumber", Message: "is required"}
	case in.Customer.Email == "":
		return &ValidationError{Field: "customer.email", Message: "is required"}
	case in.Customer.DriversLicenseNumber == "":
		return &ValidationError{Field: "customer.driversLicenseNumber", Message: "is required"}
	case in.VIN == "":
		return &ValidationError{Field: "car.vin", Message: "is required"}
	case in.StartDate == "":
		return &ValidationError{Field: "rental.startDate", Message: "is required"}
	case in.RentalPeriod < 1:
		return &ValidationError{Field: "rental.rentalPeriod", Message: "must be at least 1 day"}
	}
	return nil
}
