package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

const maxImportSize = 10 << 20

type Handler struct {
	authService      *service.AuthService
	tripService      *service.TripService
	analyticsService *service.AnalyticsService
	importService    *service.ImportService
	refService       *service.RefService
	log              zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	tripService *service.TripService,
	analyticsService *service.AnalyticsService,
	importService *service.ImportService,
	refService *service.RefService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:      authService,
		tripService:      tripService,
		analyticsService: analyticsService,
		importService:    importService,
		refService:       refService,
		log:              log,
	}
}

func (h *Handler) signUp(c *gin.Context) {
	var req struct {
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
		FullName        string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	profile, err := h.authService.SignUp(c.Request.Context(), service.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(gin.H{
		"profile": profile,
		"message": "account created, verify your email to finish registration",
	}))
}

func (h *Handler) signIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(session))
}

func (h *Handler) demoSignIn(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	role := model.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))

	session, err := h.authService.DemoSignIn(c.Request.Context(), role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(session))
}

func (h *Handler) session(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"profile": profile}))
}

func (h *Handler) listTrips(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseTripQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.tripService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

// tripPayload takes the numeric fields as strings so a blank or unparsable
// value lands as NULL instead of failing the whole submission, matching how
// the entry form always behaved.
type tripPayload struct {
	BookingID           string `json:"booking_id" binding:"required"`
	BookingDate         string `json:"booking_date" binding:"required"`
	OriginLocation      string `json:"origin_location" binding:"required"`
	DestinationLocation string `json:"destination_location" binding:"required"`
	OriginLatLon        string `json:"origin_lat_lon"`
	DestinationLatLon   string `json:"destination_lat_lon"`
	DistanceKm          string `json:"transportation_distance_km"`
	GpsProvider         string `json:"gps_provider"`
	TripType            string `json:"trip_type"`
	VehicleNo           string `json:"vehicle_no"`
	VehicleType         string `json:"vehicle_type"`
	DriverName          string `json:"driver_name"`
	DriverMobileNo      string `json:"driver_mobile_no"`
	CustomerID          string `json:"customer_id"`
	CustomerNameCode    string `json:"customer_name_code"`
	SupplierID          string `json:"supplier_id"`
	SupplierNameCode    string `json:"supplier_name_code"`
	FuelCost            string `json:"fuel_cost"`
	Revenue             string `json:"revenue"`
	Profit              string `json:"profit"`
	OnTime              string `json:"on_time"`
}

func (h *Handler) createTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req tripPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), principal, tripInputFromPayload(req))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(trip))
}

func (h *Handler) importTrips(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("file is required"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, errorResponse("file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("cannot read file"))
		return
	}
	defer file.Close()

	report, err := h.importService.ImportCSV(c.Request.Context(), principal, file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) analyticsSummary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.refService.Customers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": customers}))
}

func (h *Handler) listSuppliers(c *gin.Context) {
	suppliers, err := h.refService.Suppliers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": suppliers}))
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.refService.Vehicles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseTripQuery(c *gin.Context) (service.ListTripsOptions, error) {
	var opts service.ListTripsOptions

	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		ts, err := time.Parse("2006-01-02", dateFrom)
		if err != nil {
			return opts, err
		}
		opts.DateFrom = &ts
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		ts, err := time.Parse("2006-01-02", dateTo)
		if err != nil {
			return opts, err
		}
		opts.DateTo = &ts
	}
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			opts.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			opts.Offset = v
		}
	}

	opts.Search = strings.TrimSpace(c.Query("search"))

	return opts, nil
}

func tripInputFromPayload(req tripPayload) service.CreateTripInput {
	return service.CreateTripInput{
		BookingID:           req.BookingID,
		BookingDate:         req.BookingDate,
		OriginLocation:      req.OriginLocation,
		DestinationLocation: req.DestinationLocation,
		OriginLatLon:        service.OptionalString(req.OriginLatLon),
		DestinationLatLon:   service.OptionalString(req.DestinationLatLon),
		DistanceKm:          service.OptionalNumber(req.DistanceKm),
		GpsProvider:         service.OptionalString(req.GpsProvider),
		TripType:            service.OptionalString(req.TripType),
		VehicleNo:           service.OptionalString(req.VehicleNo),
		VehicleType:         service.OptionalString(req.VehicleType),
		DriverName:          service.OptionalString(req.DriverName),
		DriverMobileNo:      service.OptionalString(req.DriverMobileNo),
		CustomerID:          service.OptionalString(req.CustomerID),
		CustomerNameCode:    service.OptionalString(req.CustomerNameCode),
		SupplierID:          service.OptionalString(req.SupplierID),
		SupplierNameCode:    service.OptionalString(req.SupplierNameCode),
		FuelCost:            service.OptionalNumber(req.FuelCost),
		Revenue:             service.OptionalNumber(req.Revenue),
		Profit:              service.OptionalNumber(req.Profit),
		OnTime:              service.OptionalBool(req.OnTime),
	}
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
