package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/minds"
	"github.com/mmoslabs/mmos-backend/internal/repos"
	"github.com/mmoslabs/mmos-backend/internal/requestdata"
	"github.com/mmoslabs/mmos-backend/internal/types"
)

// MindProfileResult is the mind artifact browser payload: the mind plus
// its documents bucketed by category in fixed display order.
type MindProfileResult struct {
	Mind       *types.Mind           `json:"mind"`
	Categories []minds.CategoryBucket `json:"categories"`
}

type ArtifactService interface {
	MindProfile(ctx context.Context, tx *gorm.DB, projectSlug, mindSlug string) (*MindProfileResult, error)
}

type artifactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.ContentRepo
	projectRepo repos.ContentProjectRepo
	mindRepo    repos.MindRepo
}

func NewArtifactService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contentRepo repos.ContentRepo,
	projectRepo repos.ContentProjectRepo,
	mindRepo repos.MindRepo,
) ArtifactService {
	return &artifactService{
		db:          db,
		log:         baseLog.With("service", "ArtifactService"),
		contentRepo: contentRepo,
		projectRepo: projectRepo,
		mindRepo:    mindRepo,
	}
}

func (s *artifactService) MindProfile(ctx context.Context, tx *gorm.DB, projectSlug, mindSlug string) (*MindProfileResult, error) {
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

	mind, err := s.mindRepo.GetBySlug(ctx, transaction, mindSlug)
	if err != nil {
		return nil, err
	}

	rows, err := s.contentRepo.ListByType(ctx, transaction, repos.ListContentFilter{
		ProjectID: project.ID,
		Types:     []string{types.ContentTypeMindArtifacts, types.ContentTypeMindPrompts},
		MindID:    mind.ID,
	})
	if err != nil {
		s.log.Warn("MindProfile: load artifacts failed", "error", err, "mind", mindSlug)
		return nil, err
	}

	artifacts := minds.ArtifactsFromRecords(rows)
	return &MindProfileResult{
		Mind:       mind,
		Categories: minds.GroupByCategory(artifacts),
	}, nil
}
