package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appconfig "chargebay/internal/config"
	"chargebay/internal/db"
	httpserver "chargebay/internal/http"
	"chargebay/internal/http/handlers"
	"chargebay/internal/http/middleware"
	"chargebay/internal/mail"
	"chargebay/internal/models"
	"chargebay/internal/otp"
	"chargebay/internal/password"
	"chargebay/internal/payment"
	"chargebay/internal/redis"
	"chargebay/internal/repository"
	"chargebay/internal/service"
)

// App wires dependencies for the chargebay API.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// txRunner adapts the concrete store's transaction entry point to the
// contract the booking service consumes.
type txRunner struct {
	store *repository.Store
}

func (r txRunner) InTx(ctx context.Context, fn func(tx service.BookingTx) error) error {
	return r.store.InTx(ctx, func(tx *repository.Store) error {
		return fn(tx)
	})
}

// New builds the application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.ApplySchema(ctx, sqlDB); err != nil {
		return nil, err
	}
	if err := db.SeedVehicleCatalog(ctx, sqlDB); err != nil {
		return nil, err
	}

	redisClient, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		return nil, err
	}

	store := repository.NewStore(sqlDB)
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	otpStore := otp.NewStore(redisClient, cfg.OTPTTL())

	var mailer service.Mailer
	if cfg.SMTP.Addr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Addr, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
	} else {
		logger.Warn("smtp not configured, login codes are logged instead of mailed")
		mailer = mail.NewLogMailer(logger)
	}

	tokenSvc := service.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())
	authSvc := service.NewAuthService(store, hasher, tokenSvc, otpStore, mailer, logger)
	userSvc := service.NewUserService(store, hasher, logger)
	stationSvc := service.NewStationService(store, logger)
	bookingSvc := service.NewBookingService(txRunner{store: store}, store, store, cfg.Booking.AllowOverbook, logger)
	reviewSvc := service.NewReviewService(store, store, logger)
	vehicleSvc := service.NewVehicleService(store)
	paymentClient := payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.KeyID, cfg.Payment.KeySecret, nil)

	routes := httpserver.Routes{
		Health: handlers.NewHealthHandler(),

		Register:       handlers.NewRegisterHandler(authSvc),
		Login:          handlers.NewLoginHandler(authSvc),
		SendOTP:        handlers.NewSendOTPHandler(authSvc),
		LoginOTP:       handlers.NewLoginOTPHandler(authSvc),
		GoogleRegister: handlers.NewGoogleRegisterHandler(authSvc),

		UsersList:      handlers.NewUsersListHandler(userSvc),
		Profile:        handlers.NewProfileHandler(userSvc),
		UpdateProfile:  handlers.NewUpdateProfileHandler(userSvc),
		ChangePassword: handlers.NewChangePasswordHandler(userSvc),

		StationsList:   handlers.NewStationsListHandler(stationSvc),
		StationGet:     handlers.NewStationGetHandler(stationSvc),
		StationsNearby: handlers.NewStationsNearbyHandler(stationSvc),
		StationCreate:  handlers.NewStationCreateHandler(stationSvc),
		StationUpdate:  handlers.NewStationUpdateHandler(stationSvc),
		StationDelete:  handlers.NewStationDeleteHandler(stationSvc),

		MasterStationsList:    handlers.NewMasterStationsListHandler(stationSvc),
		MasterStationCreate:   handlers.NewMasterStationCreateHandler(stationSvc),
		MasterStationUpdate:   handlers.NewMasterStationUpdateHandler(stationSvc),
		MasterStationStatus:   handlers.NewMasterStationStatusHandler(stationSvc),
		MasterStationBookings: handlers.NewMasterStationBookingsHandler(bookingSvc),
		MasterBookingConfirm:  handlers.NewMasterBookingStatusHandler(bookingSvc, models.BookingStatusConfirmed),
		MasterBookingCancel:   handlers.NewMasterBookingStatusHandler(bookingSvc, models.BookingStatusCancelled),
		MasterBookingComplete: handlers.NewMasterBookingStatusHandler(bookingSvc, models.BookingStatusCompleted),

		BookingCreate:      handlers.NewBookingCreateHandler(bookingSvc),
		UserBookings:       handlers.NewUserBookingsHandler(bookingSvc),
		BookingGet:         handlers.NewBookingGetHandler(bookingSvc),
		BookingCancel:      handlers.NewBookingCancelHandler(bookingSvc),
		AdminBookings:      handlers.NewAdminBookingsHandler(bookingSvc),
		AdminBookingCancel: handlers.NewAdminBookingCancelHandler(bookingSvc),

		VehicleBrands:       handlers.NewVehicleBrandsHandler(vehicleSvc),
		VehicleBrandsByType: handlers.NewVehicleBrandsByTypeHandler(vehicleSvc),
		VehicleModels:       handlers.NewVehicleModelsHandler(vehicleSvc),
		UserVehicleGet:      handlers.NewUserVehicleGetHandler(userSvc),
		UserVehicleSave:     handlers.NewUserVehicleSaveHandler(userSvc),

		ReviewsList:    handlers.NewReviewsListHandler(reviewSvc),
		StationReviews: handlers.NewStationReviewsHandler(reviewSvc),
		ReviewCreate:   handlers.NewReviewCreateHandler(reviewSvc),

		PaymentOrder:  handlers.NewPaymentOrderHandler(paymentClient),
		PaymentVerify: handlers.NewPaymentVerifyHandler(paymentClient),

		AdminStations:   handlers.NewAdminStationsHandler(stationSvc),
		PendingStations: handlers.NewPendingStationsHandler(stationSvc),
		StationApprove:  handlers.NewStationApprovalHandler(stationSvc, models.ApprovalStatusApproved),
		StationReject:   handlers.NewStationApprovalHandler(stationSvc, models.ApprovalStatusRejected),
		DashboardStats:  handlers.NewDashboardStatsHandler(userSvc, stationSvc, bookingSvc),
	}

	router := httpserver.NewRouter(routes, httpserver.RouterDeps{
		Auth:       middleware.Auth(tokenSvc),
		AdminOnly:  middleware.RequireRole(models.RoleAdmin),
		MasterOnly: middleware.RequireRole(models.RoleStationMaster, models.RoleAdmin),
	})
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
