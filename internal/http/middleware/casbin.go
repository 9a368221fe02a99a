package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/response"
	"github.com/fandressouza/indicacoes/internal/infrastructure/auth"
)

// CasbinMiddleware defines the interface for Casbin authorization middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// RouteCasbinMW checks the route table for the role of the resolved session
type RouteCasbinMW struct {
	enforcer domain.CasbinEnforcer
	audit    domain.AuditLogger
	logger   *zap.Logger
}

// NewRouteCasbinMW creates the route policy middleware
func NewRouteCasbinMW(enforcer domain.CasbinEnforcer, audit domain.AuditLogger, logger *zap.Logger) *RouteCasbinMW {
	return &RouteCasbinMW{enforcer: enforcer, audit: audit, logger: logger}
}

// RoleOf maps a session to its casbin subject
func RoleOf(session *domain.Session) string {
	switch {
	case session == nil:
		return auth.RoleAnonymous
	case session.IsAdmin:
		return auth.RoleAdmin
	default:
		return auth.RoleUser
	}
}

// Enforce must run after SessionMW.Resolve. Anonymous requests that are denied are sent
// to the login flow, signed-in ones to their profile.
func (mw *RouteCasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			// unknown route, NoRoute answers
			c.Next()
			return
		}

		session := SessionFrom(c)
		role := RoleOf(session)
		allowed, err := mw.enforcer.Enforce(role, path, c.Request.Method)
		if err != nil {
			mw.logger.Error("policy check failed", zap.String("path", path), zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, domain.CodeInternal, response.Message(err))
			return
		}
		if allowed {
			c.Next()
			return
		}

		userID := ""
		if session != nil {
			userID = session.UserID
		}
		mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, userID).
			WithMetadata("path", path).
			WithMetadata("method", c.Request.Method).
			WithMetadata("role", role).
			WithError(domain.ErrForbidden))

		if session == nil {
			response.Error(c, domain.ErrNotLoggedIn, "/login")
			return
		}
		response.Error(c, domain.ErrForbidden, "/profile")
	}
}

var _ CasbinMiddleware = (*RouteCasbinMW)(nil)
