package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/auth"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

type memAccounts struct {
	users    map[string]*model.User
	profiles map[uuid.UUID]*model.Profile
}

func newMemAccounts() *memAccounts {
	return &memAccounts{
		users:    make(map[string]*model.User),
		profiles: make(map[uuid.UUID]*model.Profile),
	}
}

func (m *memAccounts) Create(_ context.Context, user *model.User, profile *model.Profile) error {
	user.ID = uuid.New()
	profile.ID = uuid.New()
	profile.UserID = user.ID
	m.users[user.Email] = user
	m.profiles[user.ID] = profile
	return nil
}

func (m *memAccounts) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memAccounts) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

type memTrips struct {
	trips []model.Trip
}

func (m *memTrips) List(_ context.Context, filter repository.TripFilter) ([]model.TripRecord, error) {
	records := make([]model.TripRecord, 0)
	for _, trip := range m.visible(filter.Scope) {
		records = append(records, model.TripRecord{Trip: trip})
	}
	return records, nil
}

func (m *memTrips) ListAll(_ context.Context, scope model.Scope) ([]model.Trip, error) {
	return m.visible(scope), nil
}

func (m *memTrips) Create(_ context.Context, trip *model.Trip) error {
	trip.ID = uuid.New()
	m.trips = append(m.trips, *trip)
	return nil
}

func (m *memTrips) ExistsBookingID(_ context.Context, bookingID string) (bool, error) {
	for _, trip := range m.trips {
		if trip.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTrips) visible(scope model.Scope) []model.Trip {
	if scope.Type == model.ScopeAll {
		return m.trips
	}
	out := make([]model.Trip, 0)
	for _, trip := range m.trips {
		if scope.UserID != nil && trip.UserID == *scope.UserID {
			out = append(out, trip)
		}
	}
	return out
}

type memRefs struct{}

func (memRefs) ListCustomers(context.Context) ([]model.Customer, error) { return nil, nil }
func (memRefs) ListSuppliers(context.Context) ([]model.Supplier, error) { return nil, nil }
func (memRefs) ListVehicles(context.Context) ([]model.Vehicle, error)   { return nil, nil }

func newTestRouter(t *testing.T) (*gin.Engine, *memTrips) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := newMemAccounts()
	trips := &memTrips{}

	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("test-secret")

	authService := service.NewAuthService(accounts, issuer, "demo-pass-123")
	tripService := service.NewTripService(trips)
	analyticsService := service.NewAnalyticsService(trips)
	importService := service.NewImportService(tripService)
	refService := service.NewRefService(memRefs{})

	handler := NewHandler(authService, tripService, analyticsService, importService, refService, zerolog.Nop())
	router := NewRouter(handler, middleware.Auth(parser), "test", func() error { return nil })
	return router, trips
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signInToken(t *testing.T, router *gin.Engine, role string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/demo", "", gin.H{"role": role})
	if w.Code != http.StatusOK {
		t.Fatalf("demo signin: want 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Data.Token
}

func TestSignUpValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":            "a@b.com",
		"password":         "abc123",
		"confirm_password": "abc124",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mismatched passwords: want 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":            "a@b.com",
		"password":         "abc12",
		"confirm_password": "abc12",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password: want 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":            "a@b.com",
		"password":         "abc123",
		"confirm_password": "abc123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("valid signup: want 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signin", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestTripsRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without a token, got %d", w.Code)
	}
}

func TestCreateTripLenientNumericFields(t *testing.T) {
	router, trips := newTestRouter(t)
	token := signInToken(t, router, "user")

	w := doJSON(t, router, http.MethodPost, "/api/v1/trips", token, gin.H{
		"booking_id":                 "BK-77",
		"booking_date":               "2024-08-01",
		"origin_location":            "Chennai",
		"destination_location":       "Pune",
		"transportation_distance_km": "around 500",
		"revenue":                    "1250.75",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(trips.trips) != 1 {
		t.Fatalf("want 1 stored trip, got %d", len(trips.trips))
	}
	stored := trips.trips[0]
	if stored.DistanceKm != nil {
		t.Fatalf("unparsable distance should be absent, got %v", *stored.DistanceKm)
	}
	if stored.Revenue == nil || *stored.Revenue != 1250.75 {
		t.Fatalf("revenue should parse, got %+v", stored.Revenue)
	}
}

func TestAnalyticsScopedToCaller(t *testing.T) {
	router, trips := newTestRouter(t)

	adminToken := signInToken(t, router, "admin")
	userToken := signInToken(t, router, "user")

	// One trip for the demo user, one for someone else entirely.
	w := doJSON(t, router, http.MethodPost, "/api/v1/trips", userToken, gin.H{
		"booking_id":           "BK-1",
		"booking_date":         "2024-01-05",
		"origin_location":      "A",
		"destination_location": "B",
		"revenue":              "100",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	trips.trips = append(trips.trips, model.Trip{
		BookingID:           "BK-2",
		BookingDate:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		OriginLocation:      "C",
		DestinationLocation: "D",
		Revenue:             func() *float64 { v := 40.0; return &v }(),
		UserID:              uuid.New(),
	})

	var resp struct {
		Data model.AnalyticsSummary `json:"data"`
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/analytics/summary", userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("user summary: want 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Data.TotalTrips != 1 || resp.Data.TotalRevenue != 100 {
		t.Fatalf("user should only see own trips: %+v", resp.Data)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/analytics/summary", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin summary: want 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Data.TotalTrips != 2 || resp.Data.TotalRevenue != 140 {
		t.Fatalf("admin should see the whole fleet: %+v", resp.Data)
	}
}

func TestDuplicateBookingConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signInToken(t, router, "user")

	payload := gin.H{
		"booking_id":           "BK-9",
		"booking_date":         "2024-08-01",
		"origin_location":      "Chennai",
		"destination_location": "Pune",
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/trips", token, payload); w.Code != http.StatusCreated {
		t.Fatalf("first create: want 201, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/trips", token, payload); w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: want 409, got %d", w.Code)
	}
}
