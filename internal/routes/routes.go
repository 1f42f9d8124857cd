package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	"github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/handlers"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/media"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	"github.com/BruksfildServices01/salon-queue/internal/notify"
	ucAccount "github.com/BruksfildServices01/salon-queue/internal/usecase/account"
	ucOffer "github.com/BruksfildServices01/salon-queue/internal/usecase/offer"
	ucQueue "github.com/BruksfildServices01/salon-queue/internal/usecase/queue"
	ucSalon "github.com/BruksfildServices01/salon-queue/internal/usecase/salon"
	ucVisit "github.com/BruksfildServices01/salon-queue/internal/usecase/visit"
	"github.com/BruksfildServices01/salon-queue/internal/validators"
)

// Deps are the singletons built by main. Both the Postgres repositories and
// the memory store satisfy the store interfaces.
type Deps struct {
	Queue  queue.Store
	Salons salon.Repository
	Users  user.Repository
	Visits visit.Repository
	Offers offer.Repository

	Cache     cache.QueueCache
	Publisher notify.Publisher
	// nil disables image uploads
	Uploader media.Uploader

	AuditLogger     *audit.Logger
	AuditDispatcher *audit.Dispatcher
	Clock           clock.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RequestMetrics())

	// ======================================================
	// USE CASES - ACCOUNT
	// ======================================================
	var domainCheck func(string) bool
	if cfg.IsProduction() {
		domainCheck = validators.IsEmailDomainValid
	}
	registerUC := ucAccount.NewRegister(d.Users, domainCheck)
	loginUC := ucAccount.NewLogin(d.Users)
	profileUC := ucAccount.NewUpdateProfile(d.Users)

	// ======================================================
	// USE CASES - QUEUE
	// ======================================================
	joinUC := ucQueue.NewJoinQueue(d.Queue, d.Salons, d.Cache, d.AuditDispatcher, d.Clock)
	advanceUC := ucQueue.NewAdvanceEntry(d.Queue, d.Salons, d.Users, d.Publisher, d.Cache, d.AuditDispatcher, d.Clock)
	removeUC := ucQueue.NewRemoveEntry(d.Queue, d.Salons, d.Cache, d.AuditDispatcher)
	listQueueUC := ucQueue.NewListQueue(d.Queue, d.Salons, d.Users, d.Cache)
	statusUC := ucQueue.NewGetQueueStatus(d.Queue, d.Salons)

	// ======================================================
	// USE CASES - SALONS / OFFERS / VISITS
	// ======================================================
	catalogUC := ucSalon.NewCatalog(d.Salons, d.Offers, d.Queue)
	manageUC := ucSalon.NewManage(d.Salons, d.AuditDispatcher)
	analyticsUC := ucSalon.NewAnalytics(d.Salons, d.Visits, d.Offers)
	var uploadUC *ucSalon.UploadImage
	if d.Uploader != nil {
		uploadUC = ucSalon.NewUploadImage(d.Salons, d.Uploader, d.AuditDispatcher)
	}

	offersUC := ucOffer.NewOffers(d.Offers, d.Salons, d.AuditDispatcher)
	listVisitsUC := ucVisit.NewListVisits(d.Visits, d.Salons)
	rateVisitUC := ucVisit.NewRateVisit(d.Visits)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, profileUC, d.Users, cfg, d.Clock)
	salonHandler := handlers.NewSalonHandler(catalogUC, manageUC, analyticsUC, uploadUC)
	queueHandler := handlers.NewQueueHandler(joinUC, advanceUC, removeUC, listQueueUC, statusUC)
	visitHandler := handlers.NewVisitHandler(listVisitsUC, rateVisitUC)
	offerHandler := handlers.NewOfferHandler(offersUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger, d.Salons)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

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
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/user", middleware.OptionalAuth(cfg, d.Clock), authHandler.Me)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/salons", salonHandler.List)
		api.GET("/salons/:salonId", salonHandler.Get)
		api.GET("/salons/:salonId/services", salonHandler.ListServices)
		api.GET("/salons/:salonId/offers", offerHandler.List)
		api.POST("/offers/:id/click", offerHandler.Click)

		api.GET("/queue/:salonId", queueHandler.List)
		api.POST("/queue/join", middleware.OptionalAuth(cfg, d.Clock), queueHandler.Join)

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, d.Clock))
		{
			secured.PATCH("/user/profile", authHandler.UpdateProfile)
			secured.GET("/user/queue-status", queueHandler.Status)
			secured.GET("/user/visits", visitHandler.List)
			secured.PATCH("/user/visits/:id/rating", visitHandler.Rate)

			secured.DELETE("/queue/:id", queueHandler.Remove)
		}

		// ------------------------------
		// OWNER
		// ------------------------------
		owner := api.Group("/")
		owner.Use(middleware.AuthMiddleware(cfg, d.Clock), middleware.RequireAdmin())
		{
			owner.POST("/salons", salonHandler.Create)
			owner.GET("/my-salons", salonHandler.Mine)
			owner.PUT("/salons/:salonId", salonHandler.Update)
			owner.POST("/salons/:salonId/services", salonHandler.CreateService)
			owner.POST("/salons/:salonId/image", salonHandler.UploadImage)
			owner.GET("/salons/:salonId/analytics", salonHandler.Analytics)
			owner.GET("/salons/:salonId/audit-logs", auditLogsHandler.List)

			owner.POST("/salons/:salonId/offers", offerHandler.Create)
			owner.PUT("/offers/:id", offerHandler.Update)
			owner.DELETE("/offers/:id", offerHandler.Delete)

			owner.POST("/queue/:id/call", queueHandler.Call)
			owner.POST("/queue/:id/complete", queueHandler.Complete)
			owner.POST("/queue/:id/no-show", queueHandler.NoShow)
		}
	}
}
