package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/audit"
	"github.com/nallenclassics/barber-booking/internal/cache"
	"github.com/nallenclassics/barber-booking/internal/config"
	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/handlers"
	infraRepo "github.com/nallenclassics/barber-booking/internal/infra/repository"
	"github.com/nallenclassics/barber-booking/internal/infra/storage"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/payhere"
	ucBooking "github.com/nallenclassics/barber-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	locks := domain.NewLockTable()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	catalog := cache.NewCatalog(db, cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword))
	uploader := storage.NewS3Uploader(cfg)

	gateway := &payhere.Gateway{
		MerchantID:     cfg.PayHereMerchantID,
		MerchantSecret: cfg.PayHereMerchantSecret,
		Sandbox:        cfg.PayHereSandbox,
		BaseURL:        cfg.BaseURL,
	}

	// ======================================================
	// USE CASES / BOOKING
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		cfg.Hours(),
		cfg.TZOffsetMinutes,
	)

	initiateUC := ucBooking.NewInitiateBooking(
		bookingRepo,
		locks,
		gateway,
		auditDispatcher,
		cfg.Hours(),
		cfg.TZOffsetMinutes,
		cfg.BookingFee,
		cfg.Currency,
	)

	confirmUC := ucBooking.NewConfirmPayment(
		bookingRepo,
		locks,
		auditDispatcher,
	)

	directCreateUC := ucBooking.NewDirectCreate(
		bookingRepo,
		locks,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barberHandler := handlers.NewBarberHandler(db, catalog, uploader)
	serviceHandler := handlers.NewServiceHandler(db, catalog)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cfg,
		directCreateUC,
		cancelUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		cfg,
		gateway,
		availabilityUC,
		initiateUC,
		confirmUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.Identify(cfg, db))
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/config", bookingHandler.PublicConfig)
		api.GET("/barbers", barberHandler.List)
		api.GET("/services", serviceHandler.List)
		api.GET("/available-slots", bookingHandler.AvailableSlots)
		api.GET("/appointments", appointmentHandler.ListByDate)

		// Bootstrap rule lives in the handler: the very first barber
		// can be created without a session.
		api.POST("/barbers", barberHandler.Create)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/barber-login", authHandler.BarberLogin)
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// PAYHERE CALLBACKS
		// ------------------------------
		api.POST("/payhere/notify", bookingHandler.PayHereNotify)
		api.GET("/payhere/return", bookingHandler.PayHereReturn)
		api.GET("/payhere/cancel", bookingHandler.PayHereCancel)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := api.Group("/")
		customer.Use(middleware.RequireCustomer())
		{
			customer.POST("/initiate-booking", bookingHandler.InitiateBooking)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		staff := api.Group("/")
		staff.Use(middleware.RequireBarber())
		{
			staff.PUT("/barbers/:id", barberHandler.Update)
			staff.DELETE("/barbers/:id", barberHandler.Delete)
			staff.POST("/barbers/:id/photo", barberHandler.UploadPhoto)

			staff.POST("/services", serviceHandler.Create)
			staff.PUT("/services/:id", serviceHandler.Update)
			staff.DELETE("/services/:id", serviceHandler.Delete)

			staff.POST("/appointments", appointmentHandler.Create)
			staff.DELETE("/appointments/:id", appointmentHandler.Delete)

			staff.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
