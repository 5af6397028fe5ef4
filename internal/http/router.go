package httpserver

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Routes aggregates handlers for the HTTP server.
type Routes struct {
	Health http.HandlerFunc

	// Auth
	Register       http.HandlerFunc
	Login          http.HandlerFunc
	SendOTP        http.HandlerFunc
	LoginOTP       http.HandlerFunc
	GoogleRegister http.HandlerFunc

	// Users
	UsersList      http.HandlerFunc
	Profile        http.HandlerFunc
	UpdateProfile  http.HandlerFunc
	ChangePassword http.HandlerFunc

	// Stations
	StationsList   http.HandlerFunc
	StationGet     http.HandlerFunc
	StationsNearby http.HandlerFunc
	StationCreate  http.HandlerFunc
	StationUpdate  http.HandlerFunc
	StationDelete  http.HandlerFunc

	// Station master
	MasterStationsList    http.HandlerFunc
	MasterStationCreate   http.HandlerFunc
	MasterStationUpdate   http.HandlerFunc
	MasterStationStatus   http.HandlerFunc
	MasterStationBookings http.HandlerFunc
	MasterBookingConfirm  http.HandlerFunc
	MasterBookingCancel   http.HandlerFunc
	MasterBookingComplete http.HandlerFunc

	// Bookings
	BookingCreate      http.HandlerFunc
	UserBookings       http.HandlerFunc
	BookingGet         http.HandlerFunc
	BookingCancel      http.HandlerFunc
	AdminBookings      http.HandlerFunc
	AdminBookingCancel http.HandlerFunc

	// Vehicle catalog
	VehicleBrands       http.HandlerFunc
	VehicleBrandsByType http.HandlerFunc
	VehicleModels       http.HandlerFunc
	UserVehicleGet      http.HandlerFunc
	UserVehicleSave     http.HandlerFunc

	// Reviews
	ReviewsList    http.HandlerFunc
	StationReviews http.HandlerFunc
	ReviewCreate   http.HandlerFunc

	// Payments
	PaymentOrder  http.HandlerFunc
	PaymentVerify http.HandlerFunc

	// Admin
	AdminStations   http.HandlerFunc
	PendingStations http.HandlerFunc
	StationApprove  http.HandlerFunc
	StationReject   http.HandlerFunc
	DashboardStats  http.HandlerFunc
}

// RouterDeps carries the middleware chains applied per route group.
type RouterDeps struct {
	Auth       Middleware
	AdminOnly  Middleware
	MasterOnly Middleware
}

// NewRouter wires all HTTP routes. Method and path parameters use the
// net/http pattern syntax.
func NewRouter(routes Routes, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, handler http.HandlerFunc, mws ...Middleware) {
		if handler == nil {
			return
		}
		var h http.Handler = handler
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		mux.Handle(pattern, h)
	}

	handle("GET /health", routes.Health)

	handle("POST /api/auth/register", routes.Register)
	handle("POST /api/auth/login", routes.Login)
	handle("POST /api/auth/send-otp", routes.SendOTP)
	handle("POST /api/auth/login-otp", routes.LoginOTP)
	handle("POST /api/auth/google-register", routes.GoogleRegister)

	handle("GET /api/users", routes.UsersList, deps.Auth, deps.AdminOnly)
	handle("GET /api/users/profile", routes.Profile, deps.Auth)
	handle("PUT /api/users/profile", routes.UpdateProfile, deps.Auth)
	handle("POST /api/users/change-password", routes.ChangePassword, deps.Auth)

	handle("GET /api/stations", routes.StationsList)
	handle("GET /api/stations/nearby", routes.StationsNearby)
	handle("GET /api/stations/{id}", routes.StationGet)
	handle("POST /api/stations", routes.StationCreate, deps.Auth, deps.AdminOnly)
	handle("PUT /api/stations/{id}", routes.StationUpdate, deps.Auth, deps.AdminOnly)
	handle("DELETE /api/stations/{id}", routes.StationDelete, deps.Auth, deps.AdminOnly)

	handle("GET /api/station-master/stations", routes.MasterStationsList, deps.Auth, deps.MasterOnly)
	handle("POST /api/station-master/stations", routes.MasterStationCreate, deps.Auth, deps.MasterOnly)
	handle("PUT /api/station-master/stations/{id}", routes.MasterStationUpdate, deps.Auth, deps.MasterOnly)
	handle("PUT /api/station-master/stations/{id}/status", routes.MasterStationStatus, deps.Auth, deps.MasterOnly)
	handle("GET /api/station-master/stations/{id}/bookings", routes.MasterStationBookings, deps.Auth, deps.MasterOnly)
	handle("PUT /api/station-master/bookings/{id}/confirm", routes.MasterBookingConfirm, deps.Auth, deps.MasterOnly)
	handle("PUT /api/station-master/bookings/{id}/cancel", routes.MasterBookingCancel, deps.Auth, deps.MasterOnly)
	handle("PUT /api/station-master/bookings/{id}/complete", routes.MasterBookingComplete, deps.Auth, deps.MasterOnly)

	handle("POST /api/bookings", routes.BookingCreate, deps.Auth)
	handle("GET /api/bookings/user", routes.UserBookings, deps.Auth)
	handle("GET /api/bookings/{id}", routes.BookingGet, deps.Auth)
	handle("PUT /api/bookings/{id}/cancel", routes.BookingCancel, deps.Auth)
	handle("GET /api/bookings/admin", routes.AdminBookings, deps.Auth, deps.AdminOnly)
	handle("POST /api/bookings/admin-cancel", routes.AdminBookingCancel, deps.Auth, deps.AdminOnly)

	handle("GET /api/vehicles/brands", routes.VehicleBrands)
	handle("GET /api/vehicles/brands/{type}", routes.VehicleBrandsByType)
	handle("GET /api/vehicles/brands/{id}/models", routes.VehicleModels)
	handle("GET /api/vehicles/user-vehicle", routes.UserVehicleGet, deps.Auth)
	handle("POST /api/vehicles/user-vehicle", routes.UserVehicleSave, deps.Auth)

	handle("GET /api/reviews", routes.ReviewsList)
	handle("GET /api/reviews/station/{id}", routes.StationReviews)
	handle("POST /api/reviews", routes.ReviewCreate, deps.Auth)

	handle("POST /api/payment/create-order", routes.PaymentOrder, deps.Auth)
	handle("POST /api/payment/verify", routes.PaymentVerify, deps.Auth)

	handle("GET /api/admin/dashboard-stats", routes.DashboardStats, deps.Auth, deps.AdminOnly)
	handle("GET /api/admin/users", routes.UsersList, deps.Auth, deps.AdminOnly)
	handle("GET /api/admin/bookings", routes.AdminBookings, deps.Auth, deps.AdminOnly)
	handle("GET /api/admin/stations", routes.AdminStations, deps.Auth, deps.AdminOnly)
	handle("GET /api/admin/stations/pending", routes.PendingStations, deps.Auth, deps.AdminOnly)
	handle("PUT /api/admin/stations/{id}/approve", routes.StationApprove, deps.Auth, deps.AdminOnly)
	handle("PUT /api/admin/stations/{id}/reject", routes.StationReject, deps.Auth, deps.AdminOnly)

	return mux
}
