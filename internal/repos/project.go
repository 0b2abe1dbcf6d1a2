package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

type ContentProjectRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentProject, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.ContentProject, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ContentProject, error)
}

type contentProjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentProjectRepo(db *gorm.DB, baseLog *logger.Logger) ContentProjectRepo {
	repoLog := baseLog.With("repo", "ContentProjectRepo")
	return &contentProjectRepo{db: db, log: repoLog}
}

func (r *contentProjectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentProject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentProject
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

func (r *contentProjectRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.ContentProject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ContentProject
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

func (r *contentProjectRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.ContentProject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentProject
	if tenantID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
