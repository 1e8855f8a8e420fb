package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

const bookingDateLayout = "2006-01-02"

type TripStore interface {
	List(ctx context.Context, filter repository.TripFilter) ([]model.TripRecord, error)
	ListAll(ctx context.Context, scope model.Scope) ([]model.Trip, error)
	Create(ctx context.Context, trip *model.Trip) error
	ExistsBookingID(ctx context.Context, bookingID string) (bool, error)
}

type TripService struct {
	trips TripStore
}

func NewTripService(trips TripStore) *TripService {
	return &TripService{trips: trips}
}

type ListTripsOptions struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Limit    int
	Offset   int
}

func (s *TripService) List(ctx context.Context, principal model.Principal, opts ListTripsOptions) ([]model.TripRecord, error) {
	filter := repository.TripFilter{
		Scope:    model.ScopeFor(principal),
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
		Search:   opts.Search,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}
	return s.trips.List(ctx, filter)
}

// CreateTripInput carries one trip as entered on the form. Numeric and
// boolean fields arrive already parsed leniently: absent stays absent.
type CreateTripInput struct {
	BookingID           string
	BookingDate         string
	OriginLocation      string
	DestinationLocation string
	OriginLatLon        *string
	DestinationLatLon   *string
	DistanceKm          *float64
	GpsProvider         *string
	TripType            *string
	VehicleNo           *string
	VehicleType         *string
	DriverName          *string
	DriverMobileNo      *string
	CustomerID          *string
	CustomerNameCode    *string
	SupplierID          *string
	SupplierNameCode    *string
	FuelCost            *float64
	Revenue             *float64
	Profit              *float64
	OnTime              *bool
}

// Create validates the required subset, injects the caller as owner and
// inserts the row. The owner always comes from the authenticated principal.
func (s *TripService) Create(ctx context.Context, principal model.Principal, input CreateTripInput) (*model.Trip, error) {
	bookingID := strings.TrimSpace(input.BookingID)
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.OriginLocation) == "" {
		return nil, fmt.Errorf("%w: origin_location is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.DestinationLocation) == "" {
		return nil, fmt.Errorf("%w: destination_location is required", ErrInvalidInput)
	}
	bookingDate, err := time.Parse(bookingDateLayout, strings.TrimSpace(input.BookingDate))
	if err != nil {
		return nil, fmt.Errorf("%w: booking_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	exists, err := s.trips.ExistsBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: booking_id already exists", ErrConflict)
	}

	trip := &model.Trip{
		BookingID:           bookingID,
		BookingDate:         bookingDate,
		OriginLocation:      strings.TrimSpace(input.OriginLocation),
		DestinationLocation: strings.TrimSpace(input.DestinationLocation),
		OriginLatLon:        input.OriginLatLon,
		DestinationLatLon:   input.DestinationLatLon,
		DistanceKm:          input.DistanceKm,
		GpsProvider:         input.GpsProvider,
		TripType:            input.TripType,
		VehicleNo:           input.VehicleNo,
		VehicleType:         input.VehicleType,
		DriverName:          input.DriverName,
		DriverMobileNo:      input.DriverMobileNo,
		CustomerID:          input.CustomerID,
		CustomerNameCode:    input.CustomerNameCode,
		SupplierID:          input.SupplierID,
		SupplierNameCode:    input.SupplierNameCode,
		FuelCost:            input.FuelCost,
		Revenue:             input.Revenue,
		Profit:              input.Profit,
		OnTime:              input.OnTime,
		UserID:              principal.UserID,
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// OptionalNumber parses a form value the way the entry form treats it: empty
// or unparsable input becomes absent, never a validation error.
func OptionalNumber(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// OptionalBool keeps the tri-state on-time flag: unrecognized input stays
// unknown.
func OptionalBool(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		v := true
		return &v
	case "false", "no", "0":
		v := false
		return &v
	default:
		return nil
	}
}

// OptionalString trims and nils out empty form values.
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
