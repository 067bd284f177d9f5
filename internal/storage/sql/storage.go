// Package sql stores session preferences in a SQL table through gorm.
// SQLite (pure Go) and Postgres are supported.
package sql

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/storage"
)

// MemoryDSN opens a shared in-memory SQLite database
const MemoryDSN = "file::memory:?cache=shared"

// Document is a JSON value kept in a text column. datatypes.JSON declares a
// JSON column, which SQLite gives numeric affinity: the document 5 comes
// back as an integer that datatypes.JSON cannot scan.
type Document datatypes.JSON

func (Document) GormDataType() string {
	return "text"
}

func (d Document) Value() (driver.Value, error) {
	return datatypes.JSON(d).Value()
}

func (d *Document) Scan(value any) error {
	return (*datatypes.JSON)(d).Scan(value)
}

// Entry is one stored key
type Entry struct {
	Key       string   `gorm:"primaryKey;size:127"`
	Value     Document `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy
func (Entry) TableName() string {
	return "kv_entries"
}

// Storage is a gorm-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

// OpenSQLite opens (or creates) a SQLite database at path. An empty path uses memory.
func OpenSQLite(path string) (*Storage, error) {
	if path == "" {
		path = MemoryDSN
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewWithDB(db)
}

// OpenPostgres connects to Postgres using a libpq-style DSN
func OpenPostgres(dsn string) (*Storage, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing connection and migrates the schema
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where(&Entry{Key: key}).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: Document(value)}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error; err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
