package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fleet-service/internal/model"
)

// ImportService turns an uploaded CSV into trip rows. Valid rows are
// inserted, invalid rows are skipped and reported per line; a partially
// imported file is a success.
type ImportService struct {
	trips *TripService
}

func NewImportService(trips *TripService) *ImportService {
	return &ImportService{trips: trips}
}

type ImportReport struct {
	Imported int         `json:"imported"`
	Failed   int         `json:"failed"`
	Errors   []ImportErr `json:"errors"`
}

type ImportErr struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

var requiredColumns = []string{"booking_id", "booking_date", "origin_location", "destination_location"}

func (s *ImportService) ImportCSV(ctx context.Context, principal model.Principal, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", ErrInvalidInput)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidInput, name)
		}
	}

	report := &ImportReport{Errors: []ImportErr{}}
	line := 1

	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, ImportErr{Line: line, Reason: "malformed row"})
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		input := CreateTripInput{
			BookingID:           field("booking_id"),
			BookingDate:         field("booking_date"),
			OriginLocation:      field("origin_location"),
			DestinationLocation: field("destination_location"),
			OriginLatLon:        OptionalString(field("origin_lat_lon")),
			DestinationLatLon:   OptionalString(field("destination_lat_lon")),
			DistanceKm:          OptionalNumber(field("transportation_distance_km")),
			GpsProvider:         OptionalString(field("gps_provider")),
			TripType:            OptionalString(field("trip_type")),
			VehicleNo:           OptionalString(field("vehicle_no")),
			VehicleType:         OptionalString(field("vehicle_type")),
			DriverName:          OptionalString(field("driver_name")),
			DriverMobileNo:      OptionalString(field("driver_mobile_no")),
			CustomerID:          OptionalString(field("customer_id")),
			CustomerNameCode:    OptionalString(field("customer_name_code")),
			SupplierID:          OptionalString(field("supplier_id")),
			SupplierNameCode:    OptionalString(field("supplier_name_code")),
			FuelCost:            OptionalNumber(field("fuel_cost")),
			Revenue:             OptionalNumber(field("revenue")),
			Profit:              OptionalNumber(field("profit")),
			OnTime:              OptionalBool(field("on_time")),
		}

		if _, err := s.trips.Create(ctx, principal, input); err != nil {
			if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConflict) {
				report.Failed++
				report.Errors = append(report.Errors, ImportErr{Line: line, Reason: err.Error()})
				continue
			}
			return nil, err
		}
		report.Imported++
	}

	return report, nil
}
