package model

import (
	"time"

	"github.com/google/uuid"
)

// Trip is one freight movement. Booking id, booking date and both endpoints
// are mandatory; every monetary and distance field may be absent and counts
// as zero in analytics.
type Trip struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	BookingID           string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"booking_id"`
	BookingDate         time.Time  `gorm:"type:date;not null" json:"booking_date"`
	OriginLocation      string     `gorm:"type:varchar(255);not null" json:"origin_location"`
	DestinationLocation string     `gorm:"type:varchar(255);not null" json:"destination_location"`
	OriginLatLon        *string    `gorm:"type:varchar(64)" json:"origin_lat_lon"`
	DestinationLatLon   *string    `gorm:"type:varchar(64)" json:"destination_lat_lon"`
	DistanceKm          *float64   `gorm:"column:transportation_distance_km" json:"transportation_distance_km"`
	GpsProvider         *string    `gorm:"type:varchar(64)" json:"gps_provider"`
	TripType            *string    `gorm:"type:varchar(64)" json:"trip_type"`
	VehicleNo           *string    `gorm:"type:varchar(32)" json:"vehicle_no"`
	VehicleType         *string    `gorm:"type:varchar(64)" json:"vehicle_type"`
	DriverName          *string    `gorm:"type:varchar(255)" json:"driver_name"`
	DriverMobileNo      *string    `gorm:"type:varchar(32)" json:"driver_mobile_no"`
	CustomerID          *string    `gorm:"type:varchar(64)" json:"customer_id"`
	CustomerNameCode    *string    `gorm:"type:varchar(64)" json:"customer_name_code"`
	SupplierID          *string    `gorm:"type:varchar(64)" json:"supplier_id"`
	SupplierNameCode    *string    `gorm:"type:varchar(64)" json:"supplier_name_code"`
	FuelCost            *float64   `json:"fuel_cost"`
	Revenue             *float64   `json:"revenue"`
	Profit              *float64   `json:"profit"`
	OnTime              *bool      `json:"on_time"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}
