package services

import (
	"strings"

	"github.com/fandressouza/indicacoes/domain"
)

// requireAdmin checks the acting session of an admin-only operation
func requireAdmin(acting *domain.Session) error {
	if acting == nil {
		return domain.ErrNotLoggedIn
	}
	if !acting.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// result turns an operation error into a metric label
func result(err error) string {
	if err == nil {
		return "success"
	}
	return domain.Code(err)
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
