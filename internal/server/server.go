package server

import (
	"io"
	"time"

	"github.com/northpeak-studio/site-api/internal/api/handlers"
	"github.com/northpeak-studio/site-api/internal/api/middleware"
	"github.com/northpeak-studio/site-api/internal/config"
	"github.com/northpeak-studio/site-api/internal/dedup"
	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/ratelimit"
	"github.com/northpeak-studio/site-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// Contact endpoint limiter: entries stale beyond this are swept
	limiterStaleAfter    = 5 * time.Minute
	limiterSweepInterval = 5 * time.Minute

	// Webhook dedup: retention window and sweep cadence
	dedupTTL           = 24 * time.Hour
	dedupSweepInterval = time.Hour
)

// Server represents the HTTP server
type Server struct {
	router       *gin.Engine
	cfg          *config.Config
	limiterStore *ratelimit.MemoryStore
	dedupStore   *dedup.MemoryStore
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Init wires middleware, handlers and routes, and starts the sweep loops
func (s *Server) Init() {
	logger := logging.GetGlobalLogger()

	s.limiterStore = ratelimit.NewMemoryStore(
		s.cfg.RateLimitMax,
		time.Duration(s.cfg.RateLimitWindow)*time.Second,
		limiterStaleAfter,
	)
	s.limiterStore.Start(limiterSweepInterval)

	s.dedupStore = dedup.NewMemoryStore(dedupTTL)
	s.dedupStore.Start(dedupSweepInterval)

	csrfService := service.NewCSRFService()
	relayService := service.NewRelayService(
		s.cfg.EmailRelayURL,
		s.cfg.EmailAccessKey,
		s.cfg.ContactToEmail,
		s.cfg.ContactFrom,
	)
	contactsService := service.NewContactsService(s.cfg.ContactsStoreURL)

	contactHandler := handlers.NewContactHandler(csrfService, relayService)
	webhookHandler := handlers.NewWebhookHandler(
		s.cfg.CalendlySigningKey,
		s.cfg.IsProduction(),
		s.dedupStore,
		relayService,
		contactsService,
	)
	healthHandler := handlers.NewHealthHandler(s.cfg.Environment)

	// Global middleware
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.CORS(s.cfg.AllowedOrigins))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.PreserveRequestBody())
	s.router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   10,
		Burst: 20,
	}))

	// Health check endpoint
	s.router.GET("/health", healthHandler.Check)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/contact/token", contactHandler.Token)
		v1.POST("/contact",
			middleware.PerClientRateLimit(s.limiterStore),
			middleware.CSRFMiddleware(csrfService),
			contactHandler.Submit,
		)

		v1.GET("/webhooks/calendly", webhookHandler.Status)
		v1.POST("/webhooks/calendly", webhookHandler.CalendlyWebhook)
	}

	logger.Info("All routes have been set up successfully")
}

// Start starts the server
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Port)
}

// Stop terminates the background sweep loops
func (s *Server) Stop() {
	if s.limiterStore != nil {
		s.limiterStore.Stop()
	}
	if s.dedupStore != nil {
		s.dedupStore.Stop()
	}
}
