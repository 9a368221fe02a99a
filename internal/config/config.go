package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Name   string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	Secret       string `yaml:"secret"`
	TTL          string `yaml:"ttl"`
	CookieName   string `yaml:"cookie_name"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

type UploadConfig struct {
	Backend   string `yaml:"backend"`
	Folder    string `yaml:"folder"`
	MaxBytes  int64  `yaml:"max_bytes"`
	MaxPixels int    `yaml:"max_pixels"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Region  string `yaml:"s3_region"`
	S3Endpt   string `yaml:"s3_endpoint"`
	S3Access  string `yaml:"s3_access_key"`
	S3Secret  string `yaml:"s3_secret_key"`
	PublicURL string `yaml:"public_url"`
}

type TwilioConfig struct {
	AccountSID    string `yaml:"account_sid"`
	AuthToken     string `yaml:"auth_token"`
	FromNumber    string `yaml:"from_number"`
	CountryPrefix string `yaml:"country_prefix"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Upload  UploadConfig  `yaml:"upload"`
	Twilio  TwilioConfig  `yaml:"twilio"`
}

type Config struct {
	Host             string
	Port             string
	GinMode          string
	LogLevel         string
	StoreDriver      string
	StoreDSN         string
	StoreName        string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionSecret    string
	SessionTTL       time.Duration
	CookieName       string
	SecureCookie     bool
	ImageBackend     string
	UploadFolder     string
	MaxUploadBytes   int64
	MaxImagePixels   int
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	PublicImageURL   string
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	SMSCountryPrefix string
}

// Addr is the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envAny returns the first non-empty variable among keys
func envAny(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

// Load reads the optional yaml file named by CONFIG_FILE, then applies environment
// overrides. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	file, err := loadConfigFile(env("CONFIG_FILE", "config/config.yml"))
	if err != nil {
		return nil, err
	}
	return FromFile(file)
}

// FromFile builds a Config from a parsed file plus environment overrides
func FromFile(file *ConfigFile) (*Config, error) {
	cfg := &Config{
		Host:             envAny(file.App.Host, "HOST", "IP"),
		Port:             envAny(portString(file.App.Port), "PORT"),
		GinMode:          env("GIN_MODE", orDefault(file.App.GinMode, "release")),
		LogLevel:         env("LOG_LEVEL", orDefault(file.App.LogLevel, "info")),
		StoreDriver:      env("STORE_DRIVER", orDefault(file.Store.Driver, "postgres")),
		StoreDSN:         envAny(file.Store.DSN, "STORE_DSN", "MONGO_URI"),
		StoreName:        envAny(orDefault(file.Store.Name, "indicacoes"), "STORE_NAME", "MONGO_DBNAME"),
		RedisAddr:        env("REDIS_ADDR", orDefault(file.Redis.Addr, "localhost:6379")),
		RedisPassword:    env("REDIS_PASSWORD", file.Redis.Password),
		SessionSecret:    envAny(file.Session.Secret, "SESSION_SECRET", "SECRET_KEY"),
		CookieName:       env("SESSION_COOKIE", orDefault(file.Session.CookieName, "session")),
		SecureCookie:     env("SESSION_SECURE_COOKIE", strconv.FormatBool(file.Session.SecureCookie)) == "true",
		ImageBackend:     env("IMAGE_BACKEND", orDefault(file.Upload.Backend, "local")),
		UploadFolder:     envAny(orDefault(file.Upload.Folder, "uploads"), "UPLOAD_FOLDER"),
		S3Bucket:         env("S3_BUCKET", file.Upload.S3Bucket),
		S3Region:         env("S3_REGION", orDefault(file.Upload.S3Region, "us-east-1")),
		S3Endpoint:       env("S3_ENDPOINT", file.Upload.S3Endpt),
		S3AccessKey:      env("S3_ACCESS_KEY", file.Upload.S3Access),
		S3SecretKey:      env("S3_SECRET_KEY", file.Upload.S3Secret),
		PublicImageURL:   env("PUBLIC_IMAGE_URL", file.Upload.PublicURL),
		TwilioSID:        env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", file.Twilio.FromNumber),
		SMSCountryPrefix: env("SMS_COUNTRY_PREFIX", orDefault(file.Twilio.CountryPrefix, "+55")),
	}

	redisDB, err := strconv.Atoi(env("REDIS_DB", strconv.Itoa(file.Redis.DB)))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(env("SESSION_TTL", orDefault(file.Session.TTL, "24h")))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	maxBytes := file.Upload.MaxBytes
	if maxBytes == 0 {
		maxBytes = 8 << 20
	}
	cfg.MaxUploadBytes, err = strconv.ParseInt(env("MAX_UPLOAD_BYTES", strconv.FormatInt(maxBytes, 10)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	maxPixels := file.Upload.MaxPixels
	if maxPixels == 0 {
		maxPixels = 40_000_000
	}
	cfg.MaxImagePixels, err = strconv.Atoi(env("MAX_IMAGE_PIXELS", strconv.Itoa(maxPixels)))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_IMAGE_PIXELS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session secret is required (SESSION_SECRET or SECRET_KEY)"))
	}
	if c.StoreDSN == "" {
		errs = append(errs, errors.New("store connection string is required (STORE_DSN or MONGO_URI)"))
	}
	switch c.StoreDriver {
	case "postgres", "sqlite", "mongo":
	default:
		errs = append(errs, fmt.Errorf("unsupported store driver %q", c.StoreDriver))
	}
	switch c.ImageBackend {
	case "local":
		if c.UploadFolder == "" {
			errs = append(errs, errors.New("upload folder is required for the local image backend"))
		}
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 image backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported image backend %q", c.ImageBackend))
	}
	if c.MaxImagePixels <= 0 {
		errs = append(errs, errors.New("MAX_IMAGE_PIXELS must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session TTL must be positive"))
	}
	return errors.Join(errs...)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var config ConfigFile
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config, nil
		}
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}

func portString(p int) string {
	if p == 0 {
		return "8080"
	}
	return strconv.Itoa(p)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
