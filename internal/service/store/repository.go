package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/pkg/errors"
)

// Repository: 스코어 영속 계층. 행은 삽입만 되고 수정/삭제되지 않는다.
type Repository struct {
	db *gorm.DB
}

// NewRepository: 새로운 Repository 인스턴스를 생성한다.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate: scores 테이블 스키마를 마이그레이션한다.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if err := r.db.WithContext(ctx).AutoMigrate(&domain.Score{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// Exists: 식별 튜플과 정확히 일치하는 행이 이미 있는지 확인한다.
func (r *Repository) Exists(ctx context.Context, key domain.ScoreKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Score{}).
		Where("user_id = ? AND beatmap_id = ? AND score = ? AND played_at = ?",
			key.UserID, key.BeatmapID, key.Score, key.PlayedAt).
		Count(&count).Error
	if err != nil {
		return false, errors.NewStoreError("exists", err)
	}
	return count > 0, nil
}

// Insert: 새 스코어 행을 삽입한다.
func (r *Repository) Insert(ctx context.Context, score *domain.Score) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return errors.NewStoreError("insert", err)
	}
	return nil
}

// ListForPlayerBeatmap: 특정 플레이어의 특정 비트맵 스코어를 점수 내림차순으로 반환한다.
func (r *Repository) ListForPlayerBeatmap(ctx context.Context, username string, beatmapID int64) ([]domain.Score, error) {
	var scores []domain.Score
	err := r.db.WithContext(ctx).
		Where("username = ? AND beatmap_id = ?", username, beatmapID).
		Order("score DESC").
		Find(&scores).Error
	if err != nil {
		return nil, errors.NewStoreError("list_player_beatmap", err)
	}
	return scores, nil
}

// ListAll: 저장된 모든 스코어를 삽입 순서(rowid)대로 반환한다. 감사용 원본 덤프에 쓰인다.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Score, error) {
	var scores []domain.Score
	err := r.db.WithContext(ctx).
		Order("rowid ASC").
		Find(&scores).Error
	if err != nil {
		return nil, errors.NewStoreError("list_all", err)
	}
	return scores, nil
}
