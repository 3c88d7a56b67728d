package ui

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"placementcms/app"
	"placementcms/internal"
	"placementcms/internal/config"

	"github.com/gin-gonic/gin"
)

// Services groups the application services the HTTP layer talks to
type Services struct {
	Students   *app.StudentService
	Companies  *app.CompanyService
	Placements *app.PlacementService
	Dashboard  *app.DashboardService
	Roster     *app.RosterService
}

// Server represents the placement CMS HTTP server
type Server struct {
	router   *gin.Engine
	services Services
	cfg      config.ServerConfig
	logger   *internal.Logger
	http     *http.Server
}

// NewServer creates a new server instance with middleware and routes installed
func NewServer(services Services, cfg config.ServerConfig, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:   gin.New(),
		services: services,
		cfg:      cfg,
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")

	students := api.Group("/students")
	{
		students.POST("/upload", s.handleRosterUpload)
		students.GET("/upload/template", s.handleRosterTemplate)
		students.GET("/upload/help", s.handleRosterHelp)
		students.GET("/upload/history", s.handleRosterHistory)
		students.POST("/bulk", s.handleBulkCreateStudents)

		students.GET("", s.handleListStudents)
		students.POST("", s.handleCreateStudent)
		students.GET("/:id", s.handleGetStudent)
		students.PUT("/:id", s.handleUpdateStudent)
		students.DELETE("/:id", s.handleDeleteStudent)
	}

	companies := api.Group("/companies")
	{
		companies.GET("", s.handleListCompanies)
		companies.POST("", s.handleCreateCompany)
		companies.GET("/:id", s.handleGetCompany)
		companies.PUT("/:id", s.handleUpdateCompany)
		companies.DELETE("/:id", s.handleDeleteCompany)
	}

	api.GET("/placements", s.handleListPlacements)
	api.POST("/placements", s.handleCreatePlacement)

	api.GET("/dashboard/stats", s.handleDashboardStats)
}

// Start runs the server until ctx is cancelled, then drains in-flight
// requests for at most ShutdownTimeout
func (s *Server) Start(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("[Server] shutting down (timeout %s)", timeout)
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
