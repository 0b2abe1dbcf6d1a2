package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mmoslabs/mmos-backend/internal/docview"
	"github.com/mmoslabs/mmos-backend/internal/logger"
)

// PreviewResult is what the document viewer renders. Exactly one of Nodes
// or Raw is meaningful: structured documents carry the flattened tree,
// everything else (undetected format, parse failure) carries the raw text
// and, on failure, a warning for the banner. A preview never errors on
// document content — only on lookup/authorization problems upstream.
type PreviewResult struct {
	Format  docview.Format `json:"format"`
	Nodes   []docview.Node `json:"nodes,omitempty"`
	Raw     string         `json:"raw,omitempty"`
	Warning string         `json:"warning,omitempty"`
}

type DocumentPreviewService interface {
	Preview(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*PreviewResult, error)
	PreviewText(content, sourceFile string) *PreviewResult
}

type documentPreviewService struct {
	log            *logger.Logger
	contentService ContentService
}

func NewDocumentPreviewService(baseLog *logger.Logger, contentService ContentService) DocumentPreviewService {
	return &documentPreviewService{
		log:            baseLog.With("service", "DocumentPreviewService"),
		contentService: contentService,
	}
}

func (s *documentPreviewService) Preview(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*PreviewResult, error) {
	record, err := s.contentService.Get(ctx, tx, contentID)
	if err != nil {
		return nil, err
	}
	return s.PreviewText(record.Content, record.MetaString("source_file")), nil
}

// PreviewText runs detection and parsing over a raw blob. All parse
// failures degrade to the plain-text fallback with a warning.
func (s *documentPreviewService) PreviewText(content, sourceFile string) *PreviewResult {
	format := docview.DetectFormat(content, sourceFile)
	if format == docview.FormatNone {
		return &PreviewResult{Format: docview.FormatNone, Raw: content}
	}

	value, err := docview.Parse(content, format)
	if err != nil {
		var perr *docview.ParseError
		if errors.As(err, &perr) {
			s.log.Debug("preview parse failed, falling back to raw", "format", format, "reason", perr.Reason)
		}
		return &PreviewResult{
			Format:  format,
			Raw:     content,
			Warning: "Could not parse document as " + string(format) + "; showing raw content.",
		}
	}

	return &PreviewResult{
		Format: format,
		Nodes:  docview.BuildTree(value, nil),
	}
}
