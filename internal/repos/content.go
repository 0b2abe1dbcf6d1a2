package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

var ErrNotFound = errors.New("record not found")

// ListContentFilter narrows ListByType. Statuses empty means all statuses.
type ListContentFilter struct {
	ProjectID uuid.UUID
	Types     []string
	Statuses  []string
	MindID    uuid.UUID
}

type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.ContentRecord) ([]*types.ContentRecord, error)
	Update(ctx context.Context, tx *gorm.DB, record *types.ContentRecord) (*types.ContentRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentRecord, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, slug string) (*types.ContentRecord, error)
	ListByType(ctx context.Context, tx *gorm.DB, filter ListContentFilter) ([]*types.ContentRecord, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	repoLog := baseLog.With("repo", "ContentRepo")
	return &contentRepo{db: db, log: repoLog}
}

func (r *contentRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.ContentRecord) ([]*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*types.ContentRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *contentRepo) Update(ctx context.Context, tx *gorm.DB, record *types.ContentRecord) (*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if record == nil || record.ID == uuid.Nil {
		return nil, ErrNotFound
	}

	if err := transaction.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *contentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentRecord
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Tags").
		Preload("Minds").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRepo) GetBySlug(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, slug string) (*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ContentRecord
	err := transaction.WithContext(ctx).
		Preload("Tags").
		Preload("Minds").
		Where("project_id = ? AND slug = ?", projectID, slug).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contentRepo) ListByType(ctx context.Context, tx *gorm.DB, filter ListContentFilter) ([]*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Preload("Tags").
		Preload("Minds").
		Order("updated_at DESC")

	if filter.ProjectID != uuid.Nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if len(filter.Types) > 0 {
		query = query.Where("content_type IN ?", filter.Types)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.MindID != uuid.Nil {
		query = query.
			Joins("JOIN content_mind ON content_mind.content_record_id = content.id").
			Where("content_mind.mind_id = ?", filter.MindID)
	}

	var results []*types.ContentRecord
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ContentRecord{}).Error; err != nil {
		return err
	}
	return nil
}
