package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9090
store:
  driver: sqlite
  dsn: file.db
session:
  secret: s3cr3t
  ttl: 2h
upload:
  folder: /tmp/uploads
`)
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "file.db", cfg.StoreDSN)
	assert.Equal(t, "s3cr3t", cfg.SessionSecret)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/tmp/uploads", cfg.UploadFolder)
	assert.Equal(t, "local", cfg.ImageBackend)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 40_000_000, cfg.MaxImagePixels)
	assert.Equal(t, "session", cfg.CookieName)
}

func TestLoad_OriginalEnvironmentNames(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DBNAME", "classifieds")
	t.Setenv("UPLOAD_FOLDER", "/srv/uploads")
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("IP", "0.0.0.0")
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.StoreDSN)
	assert.Equal(t, "classifieds", cfg.StoreName)
	assert.Equal(t, "/srv/uploads", cfg.UploadFolder)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  dsn: postgres://file
session:
  secret: file-secret
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STORE_DSN", "postgres://env")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_IMAGE_PIXELS", "1000000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, cfg.MaxImagePixels)

	assert.Equal(t, "postgres://env", cfg.StoreDSN)
	assert.Equal(t, "file-secret", cfg.SessionSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing secret",
			body:    "store:\n  dsn: x\n",
			wantErr: "session secret is required",
		},
		{
			name:    "missing dsn",
			body:    "session:\n  secret: x\n",
			wantErr: "store connection string is required",
		},
		{
			name:    "bad driver",
			body:    "store:\n  dsn: x\n  driver: oracle\nsession:\n  secret: x\n",
			wantErr: `unsupported store driver "oracle"`,
		},
		{
			name:    "s3 without bucket",
			body:    "store:\n  dsn: x\nsession:\n  secret: x\nupload:\n  backend: s3\n",
			wantErr: "S3_BUCKET is required",
		},
		{
			name:    "bad ttl",
			body:    "store:\n  dsn: x\nsession:\n  secret: x\n  ttl: forever\n",
			wantErr: "invalid session TTL",
		},
		{
			name:    "bad redis db",
			body:    "store:\n  dsn: x\nsession:\n  secret: x\n",
			env:     map[string]string{"REDIS_DB": "zero"},
			wantErr: "invalid REDIS_DB",
		},
		{
			name:    "bad pixel bound",
			body:    "store:\n  dsn: x\nsession:\n  secret: x\n",
			env:     map[string]string{"MAX_IMAGE_PIXELS": "lots"},
			wantErr: "invalid MAX_IMAGE_PIXELS",
		},
		{
			name:    "non-positive pixel bound",
			body:    "store:\n  dsn: x\nsession:\n  secret: x\nupload:\n  max_pixels: -1\n",
			wantErr: "MAX_IMAGE_PIXELS must be positive",
		},
		{
			name:    "bad yaml",
			body:    "store: [\n",
			wantErr: "could not parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", writeConfig(t, tt.body))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
