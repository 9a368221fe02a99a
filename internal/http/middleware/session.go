package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/response"
)

// Context keys set by SessionMW
const (
	SessionKey = "session"
	TokenKey   = "session_token"
)

// SessionMW resolves the session token carried by a request
type SessionMW struct {
	gate       domain.SessionGate
	cookieName string
}

// NewSessionMW creates the session middleware. The token is read from cookieName
// or from an Authorization: Bearer header.
func NewSessionMW(gate domain.SessionGate, cookieName string) *SessionMW {
	return &SessionMW{gate: gate, cookieName: cookieName}
}

// Resolve attaches the session, if any, to the gin context. Requests without a
// valid session continue as anonymous.
func (mw *SessionMW) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := mw.token(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := mw.gate.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(SessionKey, session)
			c.Set(TokenKey, token)
		case errors.Is(err, domain.ErrNotLoggedIn):
			// stale cookie
			if _, cerr := c.Cookie(mw.cookieName); cerr == nil {
				c.SetCookie(mw.cookieName, "", -1, "/", "", false, true)
			}
		default:
			response.Error(c, err, "")
			return
		}
		c.Next()
	}
}

func (mw *SessionMW) token(c *gin.Context) string {
	if v, err := c.Cookie(mw.cookieName); err == nil && v != "" {
		return v
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionFrom returns the resolved session, or nil for anonymous requests
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

// TokenFrom returns the token the session was resolved from
func TokenFrom(c *gin.Context) string {
	return c.GetString(TokenKey)
}
