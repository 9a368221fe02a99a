package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenGate() *mocks.MockSessionGate {
	gate := mocks.NewMockSessionGate()
	gate.ResolveFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		switch token {
		case "user-token":
			return &domain.Session{ID: "s1", UserID: "user-1"}, nil
		case "admin-token":
			return &domain.Session{ID: "s2", UserID: "admin-1", IsAdmin: true}, nil
		case "broken-store":
			return nil, domain.StorageError("find session", errors.New("connection refused"))
		default:
			return nil, domain.ErrNotLoggedIn
		}
	}
	return gate
}

func TestSessionMW_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		header         string
		expectedStatus int
		expectedUser   string
		expectCleared  bool
	}{
		{name: "anonymous", expectedStatus: http.StatusOK},
		{name: "cookie", cookie: "user-token", expectedStatus: http.StatusOK, expectedUser: "user-1"},
		{name: "bearer header", header: "Bearer admin-token", expectedStatus: http.StatusOK, expectedUser: "admin-1"},
		{name: "cookie wins over header", cookie: "user-token", header: "Bearer admin-token", expectedStatus: http.StatusOK, expectedUser: "user-1"},
		{name: "non bearer header ignored", header: "Basic admin-token", expectedStatus: http.StatusOK},
		{name: "stale cookie is cleared", cookie: "expired", expectedStatus: http.StatusOK, expectCleared: true},
		{name: "store failure", cookie: "broken-store", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewSessionMW(tokenGate(), "session").Resolve())
			r.GET("/", func(c *gin.Context) {
				userID := ""
				if s := SessionFrom(c); s != nil {
					userID = s.UserID
				}
				c.JSON(http.StatusOK, gin.H{"user_id": userID, "token": TokenFrom(c)})
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"`+tt.expectedUser+`"`)
			}

			cleared := false
			for _, c := range w.Result().Cookies() {
				if c.Name == "session" && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.expectCleared, cleared)
		})
	}
}
