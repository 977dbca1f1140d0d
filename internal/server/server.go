package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"eduadmin/internal/config"
	"eduadmin/internal/handler"
	"eduadmin/internal/middleware"
	"eduadmin/internal/models"
	"eduadmin/internal/repository"
	"eduadmin/internal/service"
	"eduadmin/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		router: gin.Default(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	issuer := token.NewIssuer(
		[]byte(s.cfg.Auth.Secret),
		s.cfg.PreviousSecretBytes(),
		time.Duration(s.cfg.Auth.TokenTTLHours)*time.Hour,
	)

	userRepo := repository.NewUserRepository(s.db, s.logger)
	videoRepo := repository.NewVideoRepository(s.db, s.logger)
	counterRepo := repository.NewCounterRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, issuer, s.logger)

	adminHandler := handler.NewAdminHandler(authService, userRepo, s.logger)
	studentHandler := handler.NewStudentHandler(authService, s.logger)
	videoHandler := handler.NewVideoHandler(videoRepo, s.logger)
	counterHandler := handler.NewCounterHandler(counterRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Payment-slip images and other static assets
	if s.cfg.Server.ImageDir != "" {
		s.router.Static("/images", s.cfg.Server.ImageDir)
	}

	// Public routes
	s.router.POST("/admin/login", adminHandler.Login)
	s.router.POST("/user/register", studentHandler.Register)
	s.router.GET("/videos", videoHandler.ListVideos)
	s.router.GET("/videos/:id", videoHandler.GetVideo)
	s.router.POST("/counters/:name/hit", counterHandler.HitCounter)

	// Admin routes: every request passes the gate before any handler runs.
	admin := s.router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(issuer, s.logger))
	admin.Use(middleware.RequireRole(models.RoleAdmin, s.logger))
	{
		admin.GET("/students", adminHandler.GetStudentProfiles)
		admin.GET("/students/count", adminHandler.GetStudentCount)
		admin.GET("/students/:id", adminHandler.GetStudentProfile)
		admin.PUT("/students/approve", adminHandler.ApproveStudent)
		admin.PUT("/students/check", adminHandler.CheckSlip)
		admin.DELETE("/students/:id", adminHandler.DeleteStudent)

		admin.POST("/videos", videoHandler.CreateVideo)
		admin.DELETE("/videos/:id", videoHandler.DeleteVideo)

		admin.GET("/counters", counterHandler.ListCounters)
		admin.POST("/counters/reset", counterHandler.ResetCounters)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
