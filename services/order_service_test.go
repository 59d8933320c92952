package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/store"
)

func newTestOrderService(t *testing.T, cars []models.Car) (*OrderService, store.Store) {
	st := store.NewMemoryStore()
	require.NoError(t, st.SeedCars(context.Background(), cars))

	svc := NewOrderService(st, zap.NewNop().Sugar())
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}
	return svc, st
}

func validInput(vin string) CreateOrderInput {
	return CreateOrderInput{
		Customer: models.Customer{
			Name:                 "Jamie Doe",
			PhoneNumber:          "555-0100",
			Email:                "jamie@example.com",
			DriversLicenseNumber: "D1234567",
		},
		VIN:          vin,
		StartDate:    "2026-10-01",
		RentalPeriod: 3,
	}
}

func TestOrderLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestOrderService(t, []models.Car{{
		VIN:         "V1",
		CarType:     "Sedan",
		Brand:       "Toyota",
		CarModel:    "Camry",
		PricePerDay: 50,
		Available:   true,
	}})

	// Creating prices the order server-side and holds the car
	order, err := svc.Create(ctx, validInput("V1"))
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 150.0, order.Rental.TotalPrice)
	assert.Equal(t, "2026-08-31", order.Rental.OrderDate)

	car, err := st.GetCarByVin(ctx, "V1")
	require.NoError(t, err)
	assert.False(t, car.Available)

	// A second customer cannot book the same car
	_, err = svc.Create(ctx, validInput("V1"))
	assert.ErrorIs(t, err, store.ErrCarUnavailable)

	// Cancelling restores bookability
	require.NoError(t, svc.Cancel(ctx, order.ID))
	car, err = st.GetCarByVin(ctx, "V1")
	require.NoError(t, err)
	assert.True(t, car.Available)

	// Confirming a cancelled order fails
	assert.ErrorIs(t, svc.Confirm(ctx, order.ID), store.ErrOrderNotPending)
}

func TestCreateRejectsUnknownCar(t *testing.T) {
	svc, _ := newTestOrderService(t, nil)

	_, err := svc.Create(context.Background(), validInput("NOPE"))
	assert.ErrorIs(t, err, store.ErrCarUnavailable)
}

func TestCreateRecomputesTotalPrice(t *testing.T) {
	svc, _ := newTestOrderService(t, []models.Car{{
		VIN: "V1", CarType: "SUV", Brand: "Audi", CarModel: "Q5",
		PricePerDay: 115, Available: true,
	}})

	in := validInput("V1")
	in.RentalPeriod = 7
	order, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 805.0, order.Rental.TotalPrice)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestOrderService(t, []models.Car{{
		VIN: "V1", PricePerDay: 50, Available: true,
	}})

	tests := []struct {
		name      string
		mutate    func(in *CreateOrderInput)
		wantField string
	}{
		{
			name:      "missing name",
			mutate:    func(in *CreateOrderInput) { in.Customer.Name = "  " },
			wantField: "customer.name",
		},
		{
			name:      "missing phone",
			mutate:    func(in *CreateOrderInput) { in.Customer.PhoneNumber = "" },
			wantField: "customer.phoneNumber",
		},
		{
			name:      "missing email",
			mutate:    func(in *CreateOrderInput) { in.Customer.Email = "" },
			wantField: "customer.email",
		},
		{
			name:      "missing license",
			mutate:    func(in *CreateOrderInput) { in.Customer.DriversLicenseNumber = "" },
			wantField: "customer.driversLicenseNumber",
		},
		{
			name:      "missing vin",
			mutate:    func(in *CreateOrderInput) { in.VIN = "" },
			wantField: "car.vin",
		},
		{
			name:      "missing start date",
			mutate:    func(in *CreateOrderInput) { in.StartDate = "" },
			wantField: "rental.startDate",
		},
		{
			name:      "zero rental period",
			mutate:    func(in *CreateOrderInput) { in.RentalPeriod = 0 },
			wantField: "rental.rentalPeriod",
		},
		{
			name:      "negative rental period",
			mutate:    func(in *CreateOrderInput) { in.RentalPeriod = -2 },
			wantField: "rental.rentalPeriod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("V1")
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestConfirmTwiceFailsSecondTime(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrderService(t, []models.Car{{
		VIN: "V1", PricePerDay: 50, Available: true,
	}})

	order, err := svc.Create(ctx, validInput("V1"))
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, order.ID))
	assert.ErrorIs(t, svc.Confirm(ctx, order.ID), store.ErrOrderNotPending)

	// Confirmed orders cannot be cancelled either
	assert.ErrorIs(t, svc.Cancel(ctx, order.ID), store.ErrOrderNotPending)
}

func TestConfirmAndCancelUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService(t, nil)

	assert.ErrorIs(t, svc.Confirm(context.Background(), 7), store.ErrOrderNotFound)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 7), store.ErrOrderNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrderService(t, []models.Car{
		{VIN: "V1", PricePerDay: 50, Available: true},
		{VIN: "V2", PricePerDay: 80, Available: true},
	})

	_, err := svc.Create(ctx, validInput("V1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("V2"))
	require.NoError(t, err)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, 2, orders[1].ID)
}
