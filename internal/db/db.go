package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/balkashynov/horizon/internal/config"
	"github.com/balkashynov/horizon/internal/logger"
	"github.com/balkashynov/horizon/internal/models"
)

// Store is the task store access layer backed by gorm
type Store struct {
	db *gorm.DB
}

// Open sets up the database connection and runs migrations
func Open(cfg config.StoreConfig, logCfg config.LogConfig) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(logCfg.SQL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: gdb}
	if err := s.migrate(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("opened %s store", cfg.Driver)
	return s, nil
}

// OpenSQLite opens (or creates) a SQLite database file at path
func OpenSQLite(path string) (*Store, error) {
	return Open(config.StoreConfig{Driver: config.DriverSQLite, Path: path}, config.LogConfig{})
}

func dialectorFor(cfg config.StoreConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return sqlite.Open(cfg.Path), nil

	case config.DriverPostgres:
		// lib/pq owns the connection; gorm only needs the pool
		conn, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newGormLogger is quiet by default; sql=true logs every statement through the app logger
func newGormLogger(sql bool) gormlogger.Interface {
	if !sql {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(logger.Std("[SQL] "), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Info,
		IgnoreRecordNotFoundError: true,
	})
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&models.Task{})
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
