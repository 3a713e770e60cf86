package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

// SearchLogRepo persists scheme search audit rows.
type SearchLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.SearchLog) ([]*types.SearchLog, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SearchLog, error)
}

type searchLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSearchLogRepo(db *gorm.DB, baseLog *logger.Logger) SearchLogRepo {
	repoLog := baseLog.With("repo", "SearchLogRepo")
	return &searchLogRepo{db: db, log: repoLog}
}

func (r *searchLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.SearchLog) ([]*types.SearchLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(logs) == 0 {
		return []*types.SearchLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *searchLogRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SearchLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var out []*types.SearchLog
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
