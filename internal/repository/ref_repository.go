package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// RefRepository serves the reference entities used by trip entry forms.
type RefRepository struct {
	db *gorm.DB
}

func NewRefRepository(db *gorm.DB) *RefRepository {
	return &RefRepository{db: db}
}

func (r *RefRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.WithContext(ctx).Order("customer_name_code").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *RefRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := r.db.WithContext(ctx).Order("supplier_name_code").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *RefRepository) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Order("vehicle_no").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
