package model

import (
	"time"

	"gorm.io/datatypes"
)

// Property Types
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeLand        PropertyType = "land"
	PropertyTypePlot        PropertyType = "plot"
)

// Listing Categories
type Category string

const (
	CategorySale        Category = "sale"
	CategoryRent        Category = "rent"
	CategoryHomestay    Category = "homestay"
	CategoryHolidayHome Category = "holiday-home"
)

// Area Units
type AreaUnit string

const (
	AreaUnitSqFt  AreaUnit = "sqft"
	AreaUnitSqM   AreaUnit = "sqm"
	AreaUnitAcres AreaUnit = "acres"
	AreaUnitKanal AreaUnit = "kanal"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

// Districts a listing can belong to
var Districts = []string{
	"Srinagar", "Jammu", "Anantnag", "Baramulla", "Budgam",
	"Ganderbal", "Kupwara", "Pulwama", "Shopian", "Kulgam",
	"Udhampur", "Kathua", "Rajouri", "Poonch", "Doda",
	"Kishtwar", "Ramban", "Reasi", "Samba", "Bandipora",
}

func IsValidDistrict(d string) bool {
	for _, known := range Districts {
		if known == d {
			return true
		}
	}
	return false
}

// Amenity tags a listing can carry
var Amenities = []string{
	"parking", "gym", "swimming_pool", "security",
	"garden", "play_area", "power_backup", "water_supply",
}

func IsValidAmenity(a string) bool {
	for _, known := range Amenities {
		if known == a {
			return true
		}
	}
	return false
}

type Property struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"not null;index"`

	// Location fields
	Location string `json:"location" gorm:"not null;index:idx_location_district"`
	District string `json:"district" gorm:"not null;index:idx_location_district"`

	PropertyType PropertyType `json:"propertyType" gorm:"not null;index:idx_type_category"`
	Category     Category     `json:"category" gorm:"not null;index:idx_type_category"`

	// Only present on residential listings
	Bedrooms  *int `json:"bedrooms,omitempty"`
	Bathrooms *int `json:"bathrooms,omitempty"`

	Area     float64  `json:"area" gorm:"not null"`
	AreaUnit AreaUnit `json:"areaUnit" gorm:"not null"`

	Amenities datatypes.JSON `json:"amenities"`
	Images    datatypes.JSON `json:"images"`

	Featured bool           `json:"featured" gorm:"default:false;index"`
	Status   PropertyStatus `json:"status" gorm:"not null;default:available"`

	CreatedByID uint  `json:"-" gorm:"not null"`
	CreatedBy   *User `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
