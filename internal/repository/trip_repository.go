package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

type TripFilter struct {
	Scope    model.Scope
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Limit    int
	Offset   int
}

// List returns trip rows with the joined display fields, newest first.
func (r *TripRepository) List(ctx context.Context, filter TripFilter) ([]model.TripRecord, error) {
	query := r.db.WithContext(ctx).
		Table("trips").
		Select(`trips.*,
			c.customer_name AS ref_customer_name,
			s.supplier_name AS ref_supplier_name,
			v.vehicle_type AS ref_vehicle_type,
			v.minimum_kms_per_day AS ref_minimum_kms_per_day`).
		Joins("LEFT JOIN customers c ON c.customer_id = trips.customer_id").
		Joins("LEFT JOIN suppliers s ON s.supplier_id = trips.supplier_id").
		Joins("LEFT JOIN vehicles v ON v.vehicle_no = trips.vehicle_no")

	query = applyScopeFilter(query, filter.Scope)

	if filter.DateFrom != nil {
		query = query.Where("trips.booking_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("trips.booking_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where(
			"(trips.booking_id ILIKE ? OR trips.origin_location ILIKE ? OR trips.destination_location ILIKE ?)",
			search, search, search,
		)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(500)
	}

	var records []model.TripRecord
	if err := query.Order("trips.created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll fetches the bare trip rows under the same scope rule, for the
// analytics fold.
func (r *TripRepository) ListAll(ctx context.Context, scope model.Scope) ([]model.Trip, error) {
	query := r.db.WithContext(ctx).Table("trips").Select("trips.*")
	query = applyScopeFilter(query, scope)

	var trips []model.Trip
	if err := query.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *TripRepository) ExistsBookingID(ctx context.Context, bookingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Trip{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyScopeFilter(query *gorm.DB, scope model.Scope) *gorm.DB {
	switch scope.Type {
	case model.ScopeAll:
		return query
	case model.ScopeOwner:
		if scope.UserID == nil {
			return query.Where("1=0")
		}
		return query.Where("trips.user_id = ?", *scope.UserID)
	default:
		return query.Where("1=0")
	}
}
