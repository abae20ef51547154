// Package httpapi exposes the marketplace over a JSON REST API built on gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/logging"
	"github.com/dmitrijs2005/smartirrigation/internal/server/config"
	"github.com/dmitrijs2005/smartirrigation/internal/server/obs"
	"github.com/dmitrijs2005/smartirrigation/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// StoreInfo describes the storage backend picked at startup.
type StoreInfo interface {
	Available() bool
	Name() string
}

// Services groups the business services the handlers call into.
type Services struct {
	Users      *services.UserService
	Proposals  *services.ProposalService
	WaterUsage *services.WaterUsageService
}

type HTTPServer struct {
	address        string
	logger         logging.Logger
	svc            Services
	store          StoreInfo
	jwtSecret      []byte
	allowedOrigins []string
	tracer         trace.TracerProvider
	router         *gin.Engine
}

// NewHTTPServer builds the router. A nil tp uses the global tracer provider.
func NewHTTPServer(cfg *config.Config, l logging.Logger, store StoreInfo, svc Services, tp trace.TracerProvider) *HTTPServer {
	s := &HTTPServer{
		address:        cfg.EndpointAddrHTTP,
		logger:         l.With("module", "http_server"),
		svc:            svc,
		store:          store,
		jwtSecret:      []byte(cfg.SecretKey),
		allowedOrigins: cfg.AllowedOrigins,
		tracer:         tp,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// ValidateOrigins checks a CORS allow-list before it reaches the router.
// Wildcards are refused so the list never degrades to allow-all. An empty
// list is valid and disables CORS.
func ValidateOrigins(origins []string) error {
	if len(origins) == 0 {
		return nil
	}
	for _, o := range origins {
		if strings.Contains(o, "*") {
			return fmt.Errorf("allowed origin %q: wildcards are not supported", o)
		}
	}
	if err := corsConfig(origins).Validate(); err != nil {
		return fmt.Errorf("allowed origins: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(obs.Middleware(s.tracer))
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(s.allowedOrigins)))
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	api := r.Group("/api")
	{
		api.GET("/health", s.health)

		auth := api.Group("/auth")
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)

		api.GET("/users", s.listUsers)

		api.GET("/proposals", s.listProposals)
		api.GET("/water-usage", s.listWaterUsage)

		secured := api.Group("")
		secured.Use(s.authenticate())
		{
			secured.POST("/proposals", s.createProposal)
			secured.DELETE("/proposals/:id", s.deleteProposal)
			secured.POST("/water-usage", s.createWaterUsage)
		}
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
