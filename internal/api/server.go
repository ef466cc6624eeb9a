package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sphenegem/gem-inventory-api/docs"
	v1 "github.com/sphenegem/gem-inventory-api/internal/api/handler/v1"
	"github.com/sphenegem/gem-inventory-api/internal/api/middleware"
	"github.com/sphenegem/gem-inventory-api/internal/cache"
	"github.com/sphenegem/gem-inventory-api/internal/config"
	"github.com/sphenegem/gem-inventory-api/internal/invoice"
	"github.com/sphenegem/gem-inventory-api/internal/pkg/jwthelper"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/service"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store storage.ObjectStore

	// dashboard reads, and the invalidation hook every write calls; the
	// hook stays nil unless redis caching is on
	dashboard service.DashboardRepository
	stats     service.StatsInvalidator
}

// NewServer wires every handler over db and store. rdb may be nil, in which
// case dashboard statistics are computed on every request.
func NewServer(conf *config.AppConfig, db *gorm.DB, store storage.ObjectStore, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  store,
	}

	s.dashboard = repository.NewDashboardRepository(dao.NewDashboardDAO(db))
	if rdb != nil {
		cached := cache.NewCachedDashboardRepository(s.dashboard, rdb, conf.Redis.StatsTTL)
		s.dashboard = cached
		s.stats = cached
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	gemstoneHandler := s.initGemstoneHandler(db)
	saleHandler := s.initSaleHandler(db)
	dashboardHandler := s.initDashboardHandler()
	s.MountHandlers(authHandler, gemstoneHandler, saleHandler, dashboardHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	issuer := jwthelper.NewIssuer([]byte(s.Config.API.JWTSigningKey), s.Config.API.TokenTTL)
	svc := service.NewAuthService(repo, issuer)
	handler := v1.NewAuthHandler(svc)

	return handler
}

func (s *Server) initGemstoneHandler(db *gorm.DB) *v1.GemstoneHandler {
	gemstoneDAO := dao.NewGemstoneDAO(db)
	repo := repository.NewGemstoneRepository(gemstoneDAO)
	svc := service.NewGemstoneService(repo, s.store, s.stats)
	handler := v1.NewGemstoneHandler(svc)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB) *v1.SaleHandler {
	repo := repository.NewSaleRepository(dao.NewSaleDAO(db), dao.NewLedgerDAO(db))
	renderer := invoice.NewPDFRenderer(s.Config.Invoice.CompanyName, s.Config.Invoice.Currency)
	emitter := invoice.NewEmitter(renderer, s.store)
	svc := service.NewSaleService(repo, emitter, s.stats, s.Config.Invoice.Timeout)
	handler := v1.NewSaleHandler(svc)

	return handler
}

func (s *Server) initDashboardHandler() *v1.DashboardHandler {
	svc := service.NewDashboardService(s.dashboard)
	handler := v1.NewDashboardHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Timeout(s.Config.API.RequestTimeout))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	gemstoneHandler *v1.GemstoneHandler,
	saleHandler *v1.SaleHandler,
	dashboardHandler *v1.DashboardHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		if s.Config.Storage.Driver == "local" {
			uploadHandler := v1.NewUploadHandler(s.store)
			public.GET("/uploads/:filename", uploadHandler.HandleGetUpload)
		}
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.POST("/auth/change-password", authHandler.HandleChangePassword)
		protected.GET("/admins/me", authHandler.HandleGetCurrentAdmin)

		protected.GET("/gemstones", gemstoneHandler.HandleListGemstones)
		protected.GET("/gemstones/search", gemstoneHandler.HandleSearchGemstones)
		protected.GET("/gemstones/:gemstoneID", gemstoneHandler.HandleGetGemstone)
		protected.POST("/gemstones", gemstoneHandler.HandleCreateGemstone)
		protected.PUT("/gemstones/:gemstoneID", gemstoneHandler.HandleUpdateGemstone)
		protected.DELETE("/gemstones/:gemstoneID", gemstoneHandler.HandleDeleteGemstone)
		protected.POST("/gemstones/:gemstoneID/sell", saleHandler.HandleSellGemstone)

		protected.GET("/sales", saleHandler.HandleListSales)
		protected.GET("/sales/:saleID", saleHandler.HandleGetSale)
		protected.DELETE("/sales/:saleID", saleHandler.HandleDeleteSale)
		protected.GET("/sales/:saleID/invoice", saleHandler.HandleDownloadInvoice)

		protected.GET("/dashboard/stats", dashboardHandler.HandleGetDashboardStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Gem Inventory API"
	docs.SwaggerInfo.Description = "Gemstone stock, sales and invoices for a single trading business."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
