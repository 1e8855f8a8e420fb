package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleet-service/internal/model"
)

type AnalyticsService struct {
	trips TripStore
}

func NewAnalyticsService(trips TripStore) *AnalyticsService {
	return &AnalyticsService{trips: trips}
}

// Summary fetches the caller's trip set under the same scope rule as the
// listing and folds it into the dashboard summary.
func (s *AnalyticsService) Summary(ctx context.Context, principal model.Principal) (*model.AnalyticsSummary, error) {
	trips, err := s.trips.ListAll(ctx, model.ScopeFor(principal))
	if err != nil {
		return nil, err
	}
	summary := Summarize(trips)
	return &summary, nil
}

// Summarize is a pure fold over the trip set. Absent monetary and distance
// values count as zero; an empty set yields an all-zero summary.
func Summarize(trips []model.Trip) model.AnalyticsSummary {
	summary := model.AnalyticsSummary{
		TotalTrips: len(trips),
		Monthly:    []model.MonthlyBucket{},
		TopRoutes:  []model.RouteStat{},
	}

	monthly := make(map[time.Month]*model.MonthlyBucket)
	routes := make(map[string]*model.RouteStat)
	routeOrder := make([]string, 0)
	onTime := 0

	for _, trip := range trips {
		revenue := deref(trip.Revenue)
		fuel := deref(trip.FuelCost)
		profit := deref(trip.Profit)

		summary.TotalRevenue += revenue
		summary.TotalFuelCost += fuel
		summary.TotalProfit += profit
		summary.TotalDistance += deref(trip.DistanceKm)

		if trip.OnTime != nil && *trip.OnTime {
			onTime++
		}

		month := trip.BookingDate.Month()
		bucket, ok := monthly[month]
		if !ok {
			bucket = &model.MonthlyBucket{Month: month.String()[:3]}
			monthly[month] = bucket
		}
		bucket.Revenue += revenue
		bucket.Fuel += fuel
		bucket.Profit += profit
		bucket.Trips++

		lane := fmt.Sprintf("%s → %s", trip.OriginLocation, trip.DestinationLocation)
		route, ok := routes[lane]
		if !ok {
			route = &model.RouteStat{Lane: lane}
			routes[lane] = route
			routeOrder = append(routeOrder, lane)
		}
		route.Profit += profit
		route.Trips++
	}

	if summary.TotalTrips > 0 {
		summary.OnTimePercentage = float64(onTime) / float64(summary.TotalTrips) * 100
	}

	// Calendar order; years merge into the same bucket like the dashboard
	// always showed them.
	for month := time.January; month <= time.December; month++ {
		if bucket, ok := monthly[month]; ok {
			summary.Monthly = append(summary.Monthly, *bucket)
		}
	}

	// Highest profit first, ties kept in first-appearance order.
	lanes := make([]model.RouteStat, 0, len(routeOrder))
	for _, lane := range routeOrder {
		lanes = append(lanes, *routes[lane])
	}
	sort.SliceStable(lanes, func(i, j int) bool {
		return lanes[i].Profit > lanes[j].Profit
	})
	if len(lanes) > 5 {
		lanes = lanes[:5]
	}
	summary.TopRoutes = lanes

	return summary
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
