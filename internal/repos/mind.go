package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

type MindRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Mind, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Mind, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Mind, error)
}

type mindRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMindRepo(db *gorm.DB, baseLog *logger.Logger) MindRepo {
	repoLog := baseLog.With("repo", "MindRepo")
	return &mindRepo{db: db, log: repoLog}
}

func (r *mindRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Mind, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Mind
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mindRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Mind, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Mind
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *mindRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Mind, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Mind
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
