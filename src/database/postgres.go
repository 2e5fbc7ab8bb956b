package database

import (
	"context"
	"fmt"
	"time"

	"assetserver/src/config"
	aws_handler "assetserver/src/utils/aws"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN builds the postgres connection string. An explicit connection_string wins.
func DSN(cfg *config.SQLConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.Port,
		cfg.SSLMode)
}

// ResolvePassword replaces the configured password with the Secrets Manager
// value when a secret id is configured.
func ResolvePassword(ctx context.Context, cfg *config.SQLConfig, secrets aws_handler.SecretGetter) error {
	if cfg.PasswordSecretID == "" {
		return nil
	}
	password, err := secrets.GetSecretValue(ctx, cfg.PasswordSecretID)
	if err != nil {
		return fmt.Errorf("failed to read database password secret %s: %w", cfg.PasswordSecretID, err)
	}
	cfg.Password = password
	return nil
}

// NewGormLogger sends gorm's query logging through logrus.
func NewGormLogger(logger *logrus.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func SetupDB(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	sqlCfg := cfg.Databases.SQL
	if sqlCfg.PasswordSecretID != "" {
		secrets, err := aws_handler.NewRegionSecretManager(sqlCfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		if err := ResolvePassword(context.Background(), &sqlCfg, secrets); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(DSN(&sqlCfg)), &gorm.Config{
		Logger:                 NewGormLogger(logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v\nPlease ensure the database is running and accessible with the provided credentials", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v\nPlease check your database configuration and ensure it's running", err)
	}
	return db, nil
}
