package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/internal/app"
	"github.com/fandressouza/indicacoes/internal/config"
)

// TestSuite runs the whole service against sqlite, miniredis and a temp upload folder
type TestSuite struct {
	Config    *config.Config
	Container *app.Container
	Redis     *miniredis.Miniredis
	Server    *httptest.Server
	Client    *http.Client
}

// NewTestSuite starts a fresh service for t
func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Host:             "127.0.0.1",
		Port:             "0",
		GinMode:          gin.TestMode,
		LogLevel:         "error",
		StoreDriver:      "sqlite",
		StoreDSN:         filepath.Join(dir, "e2e.db") + "?_busy_timeout=5000&_txlock=immediate",
		StoreName:        "indicacoes",
		RedisAddr:        mr.Addr(),
		SessionSecret:    "e2e-secret",
		SessionTTL:       time.Hour,
		CookieName:       "session",
		ImageBackend:     "local",
		UploadFolder:     filepath.Join(dir, "uploads"),
		MaxUploadBytes:   8 << 20,
		MaxImagePixels:   4_000_000,
		SMSCountryPrefix: "+55",
	}
	require.NoError(t, cfg.Validate())

	c, err := app.NewContainer(context.Background(), cfg)
	require.NoError(t, err)

	server := httptest.NewServer(app.NewRouter(c))
	t.Cleanup(func() {
		server.Close()
		c.Close()
	})

	return &TestSuite{
		Config:    cfg,
		Container: c,
		Redis:     mr,
		Server:    server,
		Client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// URL returns the absolute URL of path on the test server
func (s *TestSuite) URL(path string) string {
	return s.Server.URL + path
}
