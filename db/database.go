package db

import (
	"fmt"
	"sync"
	"time"

	"musicmanager/config"
	"musicmanager/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store owns the database handle. It is constructed immediately at
// startup and connected afterwards, so requests arriving before the
// connection is established can be answered with an explicit
// "store not ready" instead of a nil dereference.
type Store struct {
	cfg *config.Config

	mu sync.RWMutex
	db *gorm.DB
}

// NewStore creates an unconnected store handle.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Connect opens the database connection, configures the pool and
// migrates the schema. Safe to call once; callers decide whether a
// failure is fatal.
func (s *Store) Connect() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.cfg.DBUser, s.cfg.DBPassword, s.cfg.DBHost, s.cfg.DBPort, s.cfg.DBName)

	g, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := g.AutoMigrate(&model.Project{}, &model.Beat{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	s.mu.Lock()
	s.db = g
	s.mu.Unlock()
	return nil
}

// DB returns the GORM handle, or nil while the store is not connected.
func (s *Store) DB() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Ready reports whether the connection has been established.
func (s *Store) Ready() bool {
	return s.DB() != nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	g := s.DB()
	if g == nil {
		return nil
	}
	sqlDB, err := g.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
