package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/clients/redis"
	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/repos"
	"github.com/mmoslabs/mmos-backend/internal/requestdata"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

type CreateContentInput struct {
	ProjectSlug string         `json:"project_slug"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	ContentType string         `json:"content_type"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateContentInput struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Status   *string        `json:"status"`
	Metadata map[string]any `json:"metadata"`
}

type ContentService interface {
	List(ctx context.Context, tx *gorm.DB, projectSlug string, contentTypes, statuses []string) ([]*types.ContentRecord, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentRecord, error)
	Create(ctx context.Context, tx *gorm.DB, input CreateContentInput) (*types.ContentRecord, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input UpdateContentInput) (*types.ContentRecord, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.ContentRepo
	projectRepo repos.ContentProjectRepo
	bookCache   redis.BookCache
}

func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contentRepo repos.ContentRepo,
	projectRepo repos.ContentProjectRepo,
	bookCache redis.BookCache,
) ContentService {
	return &contentService{
		db:          db,
		log:         baseLog.With("service", "ContentService"),
		contentRepo: contentRepo,
		projectRepo: projectRepo,
		bookCache:   bookCache,
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable slug from a title: lower-case, non-alphanumeric
// runs become single underscores.
func Slugify(title string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(slug, "_")
}

// resolveProject checks the project exists and belongs to the caller's
// tenant before any content operation touches it.
func (s *contentService) resolveProject(ctx context.Context, tx *gorm.DB, slug string) (*types.ContentProject, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TenantID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if slug == "" {
		return nil, fmt.Errorf("missing project slug")
	}
	project, err := s.projectRepo.GetBySlug(ctx, tx, slug)
	if err != nil {
		return nil, err
	}
	if project.TenantID != rd.TenantID {
		return nil, repos.ErrNotFound
	}
	return project, nil
}

func (s *contentService) List(ctx context.Context, tx *gorm.DB, projectSlug string, contentTypes, statuses []string) ([]*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	project, err := s.resolveProject(ctx, transaction, projectSlug)
	if err != nil {
		return nil, err
	}

	for _, ct := range contentTypes {
		if !types.ValidContentType(ct) {
			return nil, fmt.Errorf("invalid content type %q", ct)
		}
	}
	for _, st := range statuses {
		if !types.ValidStatus(st) {
			return nil, fmt.Errorf("invalid status %q", st)
		}
	}

	return s.contentRepo.ListByType(ctx, transaction, repos.ListContentFilter{
		ProjectID: project.ID,
		Types:     contentTypes,
		Statuses:  statuses,
	})
}

func (s *contentService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	record, err := s.loadOwned(ctx, transaction, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *contentService) Create(ctx context.Context, tx *gorm.DB, input CreateContentInput) (*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	project, err := s.resolveProject(ctx, transaction, input.ProjectSlug)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("missing title")
	}
	if !types.ValidContentType(input.ContentType) {
		return nil, fmt.Errorf("invalid content type %q", input.ContentType)
	}
	status := input.Status
	if status == "" {
		status = types.StatusDraft
	}
	if !types.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}

	record := &types.ContentRecord{
		ProjectID:   project.ID,
		Slug:        slug,
		Title:       input.Title,
		Content:     input.Content,
		ContentType: input.ContentType,
		Status:      status,
	}
	if input.Metadata != nil {
		raw, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		record.Metadata = datatypes.JSON(raw)
	}

	created, err := s.contentRepo.Create(ctx, transaction, []*types.ContentRecord{record})
	if err != nil {
		s.log.Warn("Create content failed", "error", err, "project", input.ProjectSlug)
		return nil, err
	}
	s.invalidateBooks(ctx, project.ID, record.ContentType)
	return created[0], nil
}

func (s *contentService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input UpdateContentInput) (*types.ContentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	record, err := s.loadOwned(ctx, transaction, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("missing title")
		}
		record.Title = *input.Title
	}
	if input.Content != nil {
		record.Content = *input.Content
	}
	if input.Status != nil {
		if !types.ValidStatus(*input.Status) {
			return nil, fmt.Errorf("invalid status %q", *input.Status)
		}
		record.Status = *input.Status
	}
	if input.Metadata != nil {
		raw, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		record.Metadata = datatypes.JSON(raw)
	}

	updated, err := s.contentRepo.Update(ctx, transaction, record)
	if err != nil {
		s.log.Warn("Update content failed", "error", err, "content_id", id)
		return nil, err
	}
	s.invalidateBooks(ctx, record.ProjectID, record.ContentType)
	return updated, nil
}

func (s *contentService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	record, err := s.loadOwned(ctx, transaction, id)
	if err != nil {
		return err
	}
	if err := s.contentRepo.SoftDeleteByIDs(ctx, transaction, []uuid.UUID{id}); err != nil {
		s.log.Warn("Delete content failed", "error", err, "content_id", id)
		return err
	}
	s.invalidateBooks(ctx, record.ProjectID, record.ContentType)
	return nil
}

// loadOwned fetches a record and verifies its project belongs to the
// caller's tenant.
func (s *contentService) loadOwned(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentRecord, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TenantID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if id == uuid.Nil {
		return nil, repos.ErrNotFound
	}

	records, err := s.contentRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || records[0] == nil {
		return nil, repos.ErrNotFound
	}
	record := records[0]

	projects, err := s.projectRepo.GetByIDs(ctx, tx, []uuid.UUID{record.ProjectID})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 || projects[0] == nil || projects[0].TenantID != rd.TenantID {
		return nil, repos.ErrNotFound
	}
	return record, nil
}

// invalidateBooks bumps the dashboard cache generation after any write to
// a book_summary row. Other content types never feed that cache.
func (s *contentService) invalidateBooks(ctx context.Context, projectID uuid.UUID, contentType string) {
	if s.bookCache == nil || contentType != types.ContentTypeBookSummary {
		return
	}
	if err := s.bookCache.Invalidate(ctx, projectID); err != nil {
		s.log.Warn("book cache invalidation failed", "error", err, "project_id", projectID)
	}
}
