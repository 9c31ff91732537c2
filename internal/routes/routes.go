package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/cache"
	"github.com/restobook/booking-api/internal/config"
	"github.com/restobook/booking-api/internal/handlers"
	infraRepo "github.com/restobook/booking-api/internal/infra/repository"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/storage"
	ucBooking "github.com/restobook/booking-api/internal/usecase/booking"
	ucBranch "github.com/restobook/booking-api/internal/usecase/branch"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	branchRepo := infraRepo.NewBranchGormRepository(db)

	availCache := cache.NewAvailabilityCache(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	logoStore := storage.NewLogoStore(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	changeStatusUC := ucBooking.NewChangeStatus(
		bookingRepo,
		auditDispatcher,
		availCache,
		cancelBookingUC,
	)

	listByBranchUC := ucBooking.NewListBookingsByBranchDate(
		bookingRepo,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		availCache,
	)

	searchBranchesUC := ucBranch.NewSearchBranches(
		branchRepo,
		availabilityUC,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		updateBookingUC,
		cancelBookingUC,
		changeStatusUC,
		listByBranchUC,
	)

	branchHandler := handlers.NewBranchHandler(
		db,
		auditDispatcher,
		availCache,
		availabilityUC,
		searchBranchesUC,
	)

	settingsHandler := handlers.NewBookingSettingsHandler(db, auditDispatcher, availCache)
	savedBranchHandler := handlers.NewSavedBranchHandler(db)
	profileHandler := handlers.NewProfileHandler(db, auditDispatcher, logoStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/restaurant/register", authHandler.RestaurantRegister)
		api.POST("/auth/restaurant/login", authHandler.RestaurantLogin)
		api.GET("/auth/verify-token", authHandler.VerifyToken)

		// ------------------------------
		// PUBLIC BROWSE
		// ------------------------------
		api.GET("/branches/all", branchHandler.ListAll)
		api.GET("/branch/:id", branchHandler.Get)
		api.GET("/branch/:id/availability/:date", branchHandler.Availability)
		api.GET("/branch/search", middleware.OptionalUserMiddleware(cfg), branchHandler.Search)

		// ------------------------------
		// GUEST BOOKINGS
		// ------------------------------
		api.POST("/booking/guest", bookingHandler.CreateGuest)
		api.DELETE("/booking/guest/:reference", bookingHandler.CancelGuest)

		// ------------------------------
		// DINER
		// ------------------------------
		diner := api.Group("/")
		diner.Use(middleware.UserAuthMiddleware(cfg))
		{
			diner.GET("/me", meHandler.GetMe)
			diner.PUT("/me", meHandler.UpdateMe)

			diner.GET("/booking", bookingHandler.List)
			diner.POST("/booking", bookingHandler.Create)
			diner.GET("/booking/:id", bookingHandler.Get)
			diner.PUT("/booking/:id", bookingHandler.Update)
			diner.DELETE("/booking/:id", bookingHandler.Cancel)

			diner.GET("/saved-branch", savedBranchHandler.List)
			diner.GET("/saved-branch/ids", savedBranchHandler.ListIDs)
			diner.POST("/saved-branch", savedBranchHandler.Save)
			diner.DELETE("/saved-branch/:id", savedBranchHandler.Delete)
		}

		// ------------------------------
		// OPERATOR
		// ------------------------------
		operator := api.Group("/")
		operator.Use(middleware.RestaurantAuthMiddleware(cfg))
		{
			operator.GET("/me/restaurant", profileHandler.Get)
			operator.PUT("/me/restaurant", profileHandler.Update)
			operator.POST("/me/restaurant/logo", profileHandler.UploadLogo)

			operator.GET("/branch", branchHandler.ListMine)
			operator.POST("/branch", branchHandler.Create)
			operator.PUT("/branch/:id", branchHandler.Update)
			operator.DELETE("/branch/:id", branchHandler.Delete)

			operator.GET("/booking/branch/:id", bookingHandler.ListByBranch)
			operator.PATCH("/booking/change-status/:id", bookingHandler.ChangeStatus)

			operator.GET("/booking/settings/:branchId", settingsHandler.GetSettings)
			operator.PUT("/booking/settings/:branchId", settingsHandler.UpdateSettings)

			operator.GET("/booking/overrides/:branchId", settingsHandler.ListOverrides)
			operator.POST("/booking/overrides/:branchId", settingsHandler.CreateOverride)
			operator.PUT("/booking/override/:id", settingsHandler.UpdateOverride)
			operator.DELETE("/booking/override/:id", settingsHandler.DeleteOverride)

			operator.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
