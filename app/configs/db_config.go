package configs

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func Dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case DriverPostgres:
		if env.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set")
		}
		return postgres.Open(env.DatabaseURL), nil
	case DriverMySQL:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		return mysql.Open(dsn), nil
	case DriverSQLite:
		path := env.DatabaseURL
		if path == "" {
			path = "dashboard.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if env.IsDevelopment() {
		cfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	entry := log.WithFields(logrus.Fields{"component": "database", "driver": env.DBDriver})

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		entry.Infof("Attempting to connect to database (Attempt %d/%d)", i+1, maxRetries)
		db, err := gorm.Open(dialector, cfg)
		if err == nil {
			if lastErr = ping(db); lastErr == nil {
				entry.Info("Database connection successful")
				return db, nil
			}
			entry.WithError(lastErr).Warnf("Failed to ping database, retrying in %v", retryDelay)
		} else {
			lastErr = err
			entry.WithError(err).Warnf("Failed to open GORM connection, retrying in %v", retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
