package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/studyguide-backend/internal/platform/envutil"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string
	PostgresSSLMode  string

	SQLitePath string

	MaxOpenConns  int
	SlowThreshold time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Driver:           strings.ToLower(envutil.String("DB_DRIVER", DriverPostgres)),
		PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
		PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
		PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
		PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
		PostgresName:     envutil.String("POSTGRES_NAME", "studyguide"),
		PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       envutil.String("SQLITE_PATH", "studyguide.db"),
		MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 10),
		SlowThreshold:    envutil.Duration("DB_SLOW_THRESHOLD", time.Second),
	}
}

func (c Config) postgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresName,
		c.PostgresSSLMode,
	)
}

// Open connects to the configured database.
func Open(cfg Config, logg *logger.Logger) (*gorm.DB, error) {
	serviceLog := logg.With("service", "Database")

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.postgresDSN())
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer; one connection avoids SQLITE_BUSY.
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	serviceLog.Info("Database connected", "driver", cfg.Driver)
	return db, nil
}
