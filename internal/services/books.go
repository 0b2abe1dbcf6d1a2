package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/clients/redis"
	"github.com/mmoslabs/mmos-backend/internal/library"
	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/repos"
	"github.com/mmoslabs/mmos-backend/internal/requestdata"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

// BookDashboardResult is the admin books endpoint payload: the grouped
// (cacheable) dashboard plus the tenant's collection tags for filtering.
type BookDashboardResult struct {
	library.Dashboard
	AvailableCollections []*types.Tag `json:"available_collections"`
}

type BookAdminService interface {
	Dashboard(ctx context.Context, tx *gorm.DB, projectSlug string) (*BookDashboardResult, error)
}

type bookAdminService struct {
	db           *gorm.DB
	log          *logger.Logger
	contentRepo  repos.ContentRepo
	projectRepo  repos.ContentProjectRepo
	tagRepo      repos.TagRepo
	bookCache    redis.BookCache
	coverService CoverService
}

func NewBookAdminService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contentRepo repos.ContentRepo,
	projectRepo repos.ContentProjectRepo,
	tagRepo repos.TagRepo,
	bookCache redis.BookCache,
	coverService CoverService,
) BookAdminService {
	return &bookAdminService{
		db:           db,
		log:          baseLog.With("service", "BookAdminService"),
		contentRepo:  contentRepo,
		projectRepo:  projectRepo,
		tagRepo:      tagRepo,
		bookCache:    bookCache,
		coverService: coverService,
	}
}

func (s *bookAdminService) Dashboard(ctx context.Context, tx *gorm.DB, projectSlug string) (*BookDashboardResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TenantID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}

	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	project, err := s.projectRepo.GetBySlug(ctx, transaction, projectSlug)
	if err != nil {
		return nil, err
	}
	if project.TenantID != rd.TenantID {
		return nil, repos.ErrNotFound
	}

	// Grouped dashboard and the collection tag list are independent
	// fetches; the collection list is never cached (cheap, small).
	var (
		dash        *library.Dashboard
		collections []*types.Tag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = s.groupedDashboard(gctx, transaction, project.ID)
		return err
	})
	g.Go(func() error {
		var err error
		collections, err = s.tagRepo.ListByKind(gctx, transaction, types.TagKindCollection)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("Dashboard load failed", "error", err, "project", projectSlug)
		return nil, err
	}

	return &BookDashboardResult{Dashboard: *dash, AvailableCollections: collections}, nil
}

func (s *bookAdminService) groupedDashboard(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*library.Dashboard, error) {
	if s.bookCache != nil {
		if cached, ok := s.bookCache.GetDashboard(ctx, projectID); ok {
			return cached, nil
		}
	}

	rows, err := s.contentRepo.ListByType(ctx, tx, repos.ListContentFilter{
		ProjectID: projectID,
		Types:     []string{types.ContentTypeBookSummary},
	})
	if err != nil {
		return nil, err
	}

	books := library.GroupBooks(rows)
	if s.coverService != nil {
		for i := range books {
			if books[i].CoverURL == "" {
				books[i].CoverURL = s.coverService.PlaceholderURL(books[i].OriginalTitle)
			}
		}
	}

	dash := &library.Dashboard{Books: books, Stats: library.Stats(books)}
	if s.bookCache != nil {
		if err := s.bookCache.SetDashboard(ctx, projectID, dash); err != nil {
			s.log.Warn("book cache write failed", "error", err, "project_id", projectID)
		}
	}
	return dash, nil
}
