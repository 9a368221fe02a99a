package app

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/config"
	"github.com/fandressouza/indicacoes/internal/infrastructure/audit"
	"github.com/fandressouza/indicacoes/internal/infrastructure/auth"
	"github.com/fandressouza/indicacoes/internal/infrastructure/database"
	"github.com/fandressouza/indicacoes/internal/infrastructure/metrics"
	"github.com/fandressouza/indicacoes/internal/infrastructure/notifications"
	"github.com/fandressouza/indicacoes/internal/infrastructure/repositories"
	"github.com/fandressouza/indicacoes/internal/infrastructure/storage"
	"github.com/fandressouza/indicacoes/internal/services"
)

// TokenIssuer is the issuer claim of session tokens
const TokenIssuer = "indicacoes"

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure. DB is nil for the mongo store and Mongo is nil otherwise.
	DB          *gorm.DB
	Mongo       *mongo.Client
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	UserRepo    domain.UserRepository
	ListingRepo domain.ListingRepository
	SessionRepo domain.SessionRepository

	// Infrastructure services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	ImageProcessor  domain.ImageProcessor
	ImageStore      domain.ImageStore
	AuditLogger     domain.AuditLogger
	Metrics         domain.MetricsRecorder

	// Services
	SessionGate   domain.SessionGate
	CredentialSvc domain.CredentialService
	ModerationSvc domain.ModerationService
	SubmissionSvc domain.SubmissionService
	CatalogSvc    domain.CatalogService

	// UploadDir is set when images are kept on local disk; ImageBase prefixes image refs
	UploadDir string
	ImageBase string
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	container := &Container{Config: cfg, Logger: log}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"store", container.initStore},
		{"redis", container.initRedis},
		{"images", container.initImages},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			container.Close()
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	container.initServices()
	return container, nil
}

// NewLogger builds the process logger. Debug gin mode gets the development encoder.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.GinMode == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func (c *Container) initStore(ctx context.Context) error {
	if c.Config.StoreDriver == "mongo" {
		return c.initMongo(ctx)
	}

	logLevel := logger.Warn
	if c.Config.GinMode == "debug" {
		logLevel = logger.Info
	}
	db, err := database.Open(c.Config.StoreDriver, c.Config.StoreDSN, logLevel)
	if err != nil {
		return err
	}
	c.DB = db
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db)
	if err != nil {
		return err
	}
	c.Enforcer = cas.E
	if err := auth.SeedRoutePolicies(c.Enforcer); err != nil {
		return err
	}

	c.UserRepo = repositories.NewUserRepository(db)
	c.ListingRepo = repositories.NewListingRepository(db)
	return nil
}

// initMongo keeps users and ads in mongo. Route policies live in memory since
// the casbin adapter is gorm-backed.
func (c *Container) initMongo(ctx context.Context) error {
	client, db, err := database.OpenMongo(ctx, c.Config.StoreDSN, c.Config.StoreName)
	if err != nil {
		return err
	}
	c.Mongo = client

	if c.UserRepo, err = repositories.NewMongoUserRepository(ctx, db); err != nil {
		return err
	}
	if c.ListingRepo, err = repositories.NewMongoListingRepository(ctx, db); err != nil {
		return err
	}

	cas, err := auth.NewInMemoryCasbinService()
	if err != nil {
		return err
	}
	c.Enforcer = cas.E
	return auth.SeedRoutePolicies(c.Enforcer)
}

func (c *Container) initRedis(ctx context.Context) error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	c.RedisClient = rdb.Client
	if err := rdb.Ping(ctx); err != nil {
		return err
	}
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient)
	return nil
}

func (c *Container) initImages(ctx context.Context) error {
	proc := storage.NewImageProcessor(c.Logger)
	proc.MaxPixels = c.Config.MaxImagePixels
	c.ImageProcessor = proc

	switch c.Config.ImageBackend {
	case "s3":
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Bucket:    c.Config.S3Bucket,
			Region:    c.Config.S3Region,
			Endpoint:  c.Config.S3Endpoint,
			AccessKey: c.Config.S3AccessKey,
			SecretKey: c.Config.S3SecretKey,
		})
		if err != nil {
			return err
		}
		c.ImageStore = storage.NewS3ImageStore(client, c.Config.S3Bucket, c.Logger)
		c.ImageBase = c.Config.PublicImageURL
	default:
		local, err := storage.NewLocalImageStore(c.Config.UploadFolder, c.Logger)
		if err != nil {
			return err
		}
		c.ImageStore = local
		c.UploadDir = local.Dir()
		c.ImageBase = "/uploads"
		if c.Config.PublicImageURL != "" {
			c.ImageBase = c.Config.PublicImageURL
		}
	}
	return nil
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewTokenService(c.Config.SessionSecret, TokenIssuer)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Config.SMSCountryPrefix,
		c.Logger,
	)
	c.AuditLogger = audit.NewZapAuditLogger(c.Logger)
	c.Metrics = metrics.NewRecorder()

	c.SessionGate = services.NewSessionGate(c.SessionRepo, c.TokenSvc, c.Config.SessionTTL)
	c.CredentialSvc = services.NewCredentialService(c.UserRepo, c.PasswordSvc, c.SessionGate, c.AuditLogger, c.Metrics)
	c.ModerationSvc = services.NewModerationService(c.ListingRepo, c.NotificationSvc, c.AuditLogger, c.Metrics)
	c.SubmissionSvc = services.NewSubmissionService(c.ListingRepo, c.ImageProcessor, c.ImageStore, c.AuditLogger, c.Metrics)
	c.CatalogSvc = services.NewCatalogService(c.ListingRepo)
}

// Close closes all connections
func (c *Container) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.RedisClient != nil {
		keep(c.RedisClient.Close())
	}
	if c.Mongo != nil {
		keep(c.Mongo.Disconnect(context.Background()))
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			keep(err)
		} else {
			keep(sqlDB.Close())
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return firstErr
}
