// Package httpapi exposes the FieldPass HTTP surface: the gin router, the
// authorization middleware pipeline, and the request handlers.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/fieldpass/fieldpass/internal/logging"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	auth     *services.AuthService
	identity *services.IdentityService
	users    *services.UserService
	scouts   *services.ScoutService
	coupons  *services.CouponService
}

func NewServer(cfg *config.Config, logger logging.Logger,
	authSvc *services.AuthService, identity *services.IdentityService,
	users *services.UserService, scouts *services.ScoutService,
	coupons *services.CouponService) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger.With("module", "http_server"),
		auth:     authSvc,
		identity: identity,
		users:    users,
		scouts:   scouts,
		coupons:  coupons,
	}
}

// Router builds the gin engine with recovery, 404/405 handlers, and all
// routes registered.
func (s *Server) Router() *gin.Engine {
	if s.cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})

	s.registerRoutes(r)
	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.EndpointAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting HTTP server", "address", s.cfg.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// internalError emits the generic 500 body. Detail is included outside
// release mode only; production responses never leak internals.
func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "unexpected error", "path", c.FullPath(), "error", err.Error())

	body := gin.H{"message": "Internal server error"}
	if !s.cfg.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
