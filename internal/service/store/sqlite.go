package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/aticie/spy-bot/internal/constants"
)

// SQLiteService: SQLite 데이터베이스 연결 및 GORM 인스턴스를 관리하는 서비스
type SQLiteService struct {
	db     *sql.DB
	gormDB *gorm.DB
	logger *slog.Logger
}

// NewSQLiteService: 주어진 경로에 SQLite 연결을 수립하고 서비스를 초기화한다.
// 단일 파일 DB이므로 동시 쓰기 충돌을 막기 위해 연결을 1개로 제한한다.
func NewSQLiteService(path string, logger *slog.Logger) (*SQLiteService, error) {
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	db, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout.DatabasePing)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	logger.Info("sqlite_connected", slog.String("path", path))

	return &SQLiteService{
		db:     db,
		gormDB: gormDB,
		logger: logger,
	}, nil
}

// GetDB: 기본 sql.DB 인스턴스를 반환한다.
func (s *SQLiteService) GetDB() *sql.DB {
	return s.db
}

// GetGormDB: GORM DB 인스턴스를 반환한다.
func (s *SQLiteService) GetGormDB() *gorm.DB {
	return s.gormDB
}

// Ping: 데이터베이스 연결 상태를 확인한다.
func (s *SQLiteService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

// Close: 데이터베이스 연결을 안전하게 종료한다.
func (s *SQLiteService) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close sqlite: %w", err)
		}
	}
	return nil
}
