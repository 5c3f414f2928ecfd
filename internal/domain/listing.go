package domain

import (
	"errors"
	"time"
)

type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyCondo     PropertyType = "condo"
	PropertyVilla     PropertyType = "villa"
	PropertyCabin     PropertyType = "cabin"
)

var ErrUnknownPropertyType = errors.New("unknown property type")

func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case PropertyHouse, PropertyApartment, PropertyCondo, PropertyVilla, PropertyCabin:
		return PropertyType(s), nil
	}
	return "", ErrUnknownPropertyType
}

type Listing struct {
	ID            int64        `json:"id"`
	HostID        int64        `json:"host_id" gorm:"index"`
	Title         string       `json:"title" validate:"required"`
	Description   string       `json:"description" gorm:"type:text"`
	PropertyType  PropertyType `json:"property_type" validate:"required"`
	PricePerNight float64      `json:"price_per_night" validate:"gte=0"`
	Bedrooms      int          `json:"bedrooms"`
	Bathrooms     int          `json:"bathrooms"`
	MaxGuests     int          `json:"max_guests" validate:"gt=0"`
	Address       string       `json:"address" gorm:"type:text"`
	City          string       `json:"city" gorm:"size:100"`
	Country       string       `json:"country" gorm:"size:100"`
	Amenities     []string     `json:"amenities" gorm:"serializer:json;type:json"`
	IsAvailable   bool         `json:"is_available"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Host     *User     `json:"host,omitempty" gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	Bookings []Booking `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	Reviews  []Review  `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}
