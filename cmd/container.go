package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/clockx"
	appconfig "github.com/Abraxas-365/hireflow/pkg/config"
	"github.com/Abraxas-365/hireflow/pkg/database"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hireflow/pkg/iam/auth"
	"github.com/Abraxas-365/hireflow/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/board/boardapi"
	"github.com/Abraxas-365/hireflow/recruitment/board/boardinfra"
	"github.com/Abraxas-365/hireflow/recruitment/board/boardsrv"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/inbox/inboxinfra"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// snapshotsKept is how many postgres snapshots survive the startup prune.
const snapshotsKept = 50

// Container holds all application dependencies
type Container struct {
	// Config
	Config     appconfig.Config
	AuthConfig auth.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Clock      clockx.Clock
	Inbox      inbox.Inbox
	Snapshots  board.SnapshotStore

	// Services
	TokenService auth.TokenService
	BoardService *boardsrv.Service

	// API Handlers
	BoardHandlers *boardapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{Config: appconfig.Load()}

	logx.SetFormat(c.Config.LogFormat)
	logx.SetLevel(logx.ParseLevel(c.Config.LogLevel))

	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	ctx := context.Background()

	// 1. Database Connection (only the postgres snapshot store needs it)
	if c.Config.SnapshotDriver == "postgres" {
		db, err := database.Connect(ctx, c.Config.Database)
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		c.DB = db

		if c.Config.RunMigrations {
			if err := database.RunMigrations(ctx, db.DB); err != nil {
				logx.Fatalf("Failed to run migrations: %v", err)
			}
		}
	}

	// 2. Redis Connection
	if c.Config.Redis.Addr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.Inbox = inboxinfra.NewRedisInbox(c.Redis, "hireflow:inbox")
	} else {
		logx.Info("REDIS_ADDR is not set, using in-memory inbox")
		c.Inbox = inbox.NewMemoryInbox()
	}

	// 3. Blob storage
	switch c.Config.Storage.Driver {
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "hireflow")
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(c.Config.Storage.Dir)
	}

	// 4. Snapshot store
	switch c.Config.SnapshotDriver {
	case "postgres":
		c.Snapshots = boardinfra.NewPostgresSnapshotStore(c.DB)
	case "fs":
		c.Snapshots = boardinfra.NewFSSnapshotStore(c.FileSystem, c.FileSystem.Join("snapshots", "board.json"))
	default:
		logx.Warn("SNAPSHOT_DRIVER is none, the board lives in memory only")
		c.Snapshots = boardinfra.NoopSnapshotStore{}
	}

	// 5. Clock
	c.Clock = newClock(c.Config.Clock)

	// 6. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = c.Config.JWTSecret
	c.AuthConfig.JWT.AccessTokenTTL = c.Config.JWTTTL
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}
}

func (c *Container) initServices() {
	ctx := context.Background()

	passwordSvc := authinfra.NewBcryptPasswordService()

	// Token Service
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// Board Service
	c.BoardService = boardsrv.NewService(
		board.New(),
		c.Clock,
		c.Inbox,
		c.FileSystem,
		c.Snapshots,
		passwordSvc,
		c.TokenService,
	)
	if err := c.BoardService.Restore(ctx); err != nil {
		logx.Fatalf("Failed to restore board: %v", err)
	}

	if pg, ok := c.Snapshots.(*boardinfra.PostgresSnapshotStore); ok {
		if n, err := pg.Prune(ctx, snapshotsKept); err != nil {
			logx.Warnf("Failed to prune board snapshots: %v", err)
		} else if n > 0 {
			logx.Infof("Pruned %d old board snapshots", n)
		}
	}

	// --- Handlers ---
	c.BoardHandlers = boardapi.NewHandlers(c.BoardService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

// newClock builds the system clock, or a simulated one starting at
// CLOCK_START (today when unset).
func newClock(cfg appconfig.ClockConfig) clockx.Clock {
	if cfg.Mode != "simulated" {
		return clockx.System{}
	}

	start := kernel.DateOf(time.Now().UTC())
	if cfg.Start != "" {
		t, err := kernel.ParseDate(cfg.Start)
		if err != nil {
			logx.Fatalf("Invalid CLOCK_START %q: %v", cfg.Start, err)
		}
		start = t
	}
	logx.Infof("Using simulated clock starting at %s", kernel.FormatDate(start))
	return clockx.NewSimulated(start)
}

// Close releases the infrastructure connections.
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
}
