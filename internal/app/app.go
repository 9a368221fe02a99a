package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/internal/config"
	httpx "github.com/fandressouza/indicacoes/internal/http"
	"github.com/fandressouza/indicacoes/internal/http/handlers"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP surface on top of a container
func NewRouter(c *Container) *gin.Engine {
	cookie := handlers.CookieConfig{Name: c.Config.CookieName, Secure: c.Config.SecureCookie}

	return httpx.BuildRouter(httpx.Deps{
		Auth:      handlers.NewAuthHandlers(c.CredentialSvc, c.CatalogSvc, cookie),
		Listings:  handlers.NewListingHandlers(c.CatalogSvc, c.SubmissionSvc, c.ImageBase, c.Config.MaxUploadBytes),
		Admin:     handlers.NewAdminHandlers(c.ModerationSvc, c.CredentialSvc, c.ImageBase),
		Sessions:  middleware.NewSessionMW(c.SessionGate, c.Config.CookieName),
		Casbin:    middleware.NewRouteCasbinMW(c.Enforcer, c.AuditLogger, c.Logger),
		Logger:    c.Logger,
		UploadDir: c.UploadDir,
	})
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("images", cfg.ImageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
