package models

// Car represents a vehicle in the rental catalog. Cars are identified by
// their VIN; the numeric ID only exists to keep a stable listing order in
// the relational backend.
type Car struct {
	ID                uint    `gorm:"primaryKey" json:"-"`
	VIN               string  `gorm:"uniqueIndex;size:32;not null" json:"vin"`
	CarType           string  `gorm:"index;not null" json:"carType"`
	Brand             string  `gorm:"index;not null" json:"brand"`
	CarModel          string  `gorm:"not null" json:"carModel"`
	Image             string  `gorm:"not null" json:"image"`
	YearOfManufacture int     `gorm:"not null" json:"yearOfManufacture"`
	Mileage           string  `gorm:"not null" json:"mileage"`
	FuelType          string  `gorm:"not null" json:"fuelType"`
	Available         bool    `gorm:"not null" json:"available"`
	PricePerDay       float64 `gorm:"not null;check:price_per_day > 0" json:"pricePerDay"`
	Description       string  `json:"description,omitempty"`
	ImageURL          string  `gorm:"-" json:"imageUrl,omitempty"` // computed field, resolved by the image service
}

// TableName specifies the table name for the Car model
func (Car) TableName() string {
	return "cars"
}
