package service

import (
	"context"

	"fleet-service/internal/model"
)

type RefStore interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
}

// RefService exposes the reference entities backing the entry-form dropdowns.
type RefService struct {
	refs RefStore
}

func NewRefService(refs RefStore) *RefService {
	return &RefService{refs: refs}
}

func (s *RefService) Customers(ctx context.Context) ([]model.Customer, error) {
	return s.refs.ListCustomers(ctx)
}

func (s *RefService) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.refs.ListSuppliers(ctx)
}

func (s *RefService) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.refs.ListVehicles(ctx)
}
