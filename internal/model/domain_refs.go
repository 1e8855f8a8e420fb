package model

import (
	"time"

	"github.com/google/uuid"
)

// Reference entities joined into trip listings for display. No business
// logic operates on them.

type Customer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CustomerID       string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"customer_id"`
	CustomerName     *string   `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerNameCode string    `gorm:"type:varchar(64);not null" json:"customer_name_code"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

type Supplier struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	SupplierID       string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"supplier_id"`
	SupplierName     *string   `gorm:"type:varchar(255)" json:"supplier_name"`
	SupplierNameCode string    `gorm:"type:varchar(64);not null" json:"supplier_name_code"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

type Vehicle struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleNo        string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"vehicle_no"`
	VehicleType      *string   `gorm:"type:varchar(64)" json:"vehicle_type"`
	MinimumKmsPerDay *float64  `json:"minimum_kms_per_day"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
