package app

import (
	"context"
	"fmt"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/config"
	"github.com/fandressouza/indicacoes/internal/services"
)

// OpenStore initializes only the user and listing stores. Used by out-of-band tools
// that do not serve requests.
func OpenStore(ctx context.Context, cfg *config.Config) (*Container, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: log}
	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	return c, nil
}

// SetAdminByEmail grants or removes the admin flag of the account registered under
// email. Open sessions keep their snapshot until the user signs in again.
func SetAdminByEmail(ctx context.Context, users domain.UserRepository, email string, admin bool) (*domain.User, error) {
	user, err := users.FindByEmail(ctx, services.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := users.SetAdmin(ctx, user.ID, admin); err != nil {
		return nil, err
	}
	user.IsAdmin = admin
	return user, nil
}
