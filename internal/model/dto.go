package model

// TripRecord is a trip row with the customer/supplier/vehicle display fields
// joined in for listings.
type TripRecord struct {
	Trip
	CustomerName        *string  `gorm:"column:ref_customer_name" json:"customer_name"`
	SupplierName        *string  `gorm:"column:ref_supplier_name" json:"supplier_name"`
	VehicleTypeRef      *string  `gorm:"column:ref_vehicle_type" json:"vehicle_type_ref"`
	MinimumKmsPerDayRef *float64 `gorm:"column:ref_minimum_kms_per_day" json:"minimum_kms_per_day"`
}

// AnalyticsSummary is derived per request and never persisted. All sums treat
// absent values as zero.
type AnalyticsSummary struct {
	TotalTrips       int             `json:"total_trips"`
	TotalRevenue     float64         `json:"total_revenue"`
	TotalFuelCost    float64         `json:"total_fuel_cost"`
	TotalProfit      float64         `json:"total_profit"`
	TotalDistance    float64         `json:"total_distance"`
	OnTimePercentage float64         `json:"on_time_percentage"`
	Monthly          []MonthlyBucket `json:"monthly_data"`
	TopRoutes        []RouteStat     `json:"top_routes"`
}

type MonthlyBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Fuel    float64 `json:"fuel"`
	Profit  float64 `json:"profit"`
	Trips   int     `json:"trips"`
}

type RouteStat struct {
	Lane   string  `json:"lane"`
	Profit float64 `json:"profit"`
	Trips  int     `json:"trips"`
}
