package models

// OrderStatus is the lifecycle state of an order (persisted as a string).
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

// allowedTransitions defines the order state machine as a directed graph.
// Orders always start at pending. cancelled and completed are terminal.
// Note that confirmed orders cannot be cancelled: the only way out of
// confirmed is completed.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether from -> to is a legal status transition.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether the status holds a car unavailable.
func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Customer is the contact snapshot taken when a reservation is submitted.
type Customer struct {
	Name                 string `gorm:"column:customer_name;not null" json:"name"`
	PhoneNumber          string `gorm:"column:phone_number;not null" json:"phoneNumber"`
	Email                string `gorm:"column:email;not null" json:"email"`
	DriversLicenseNumber string `gorm:"column:drivers_license_number;not null" json:"driversLicenseNumber"`
}

// CarRef references a catalog car by VIN. It is not an owning relationship:
// the car may be removed from the catalog while its orders remain.
type CarRef struct {
	VIN string `gorm:"column:car_vin;index;size:32;not null" json:"vin"`
}

// Rental holds the rental terms of an order. Dates are stored as
// YYYY-MM-DD strings, matching the storefront wire format.
type Rental struct {
	StartDate    string  `gorm:"column:start_date;not null" json:"startDate"`
	RentalPeriod int     `gorm:"column:rental_period;not null" json:"rentalPeriod"`
	TotalPrice   float64 `gorm:"column:total_price;not null" json:"totalPrice"`
	OrderDate    string  `gorm:"column:order_date;not null" json:"orderDate"`
}

// Order represents a reservation request against a catalog car. IDs are
// integers allocated monotonically (max existing id + 1). Orders are never
// deleted; cancellation is a status change.
type Order struct {
	ID       int         `gorm:"primaryKey" json:"id"`
	Customer Customer    `gorm:"embedded" json:"customer"`
	Car      CarRef      `gorm:"embedded" json:"car"`
	Rental   Rental      `gorm:"embedded" json:"rental"`
	Status   OrderStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
