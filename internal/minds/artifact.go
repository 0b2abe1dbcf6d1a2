package minds

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmoslabs/mmos-backend/internal/types"
)

// Artifact is a knowledge document belonging to a mind, reshaped from the
// generic content row into the strict form the dashboard consumes.
type Artifact struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentType string     `json:"content_type"`
	SourceFile  string     `json:"source_file,omitempty"`
	ImportedAt  *time.Time `json:"imported_at,omitempty"`
	Category    Category   `json:"category"`
}

// ArtifactFromRecord maps a mind_artifacts or mind_prompts row. Metadata
// fields degrade to zero values rather than failing; the category is
// derived immediately so it is computed exactly once per fetch.
func ArtifactFromRecord(rec *types.ContentRecord) Artifact {
	a := Artifact{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Title:       rec.Title,
		Content:     rec.Content,
		ContentType: rec.ContentType,
		SourceFile:  rec.MetaString("source_file"),
	}
	if raw := rec.MetaString("imported_at"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			a.ImportedAt = &ts
		}
	}
	a.Category = Categorize(a)
	return a
}

// ArtifactsFromRecords maps a row slice, preserving fetch order.
func ArtifactsFromRecords(recs []*types.ContentRecord) []Artifact {
	out := make([]Artifact, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		out = append(out, ArtifactFromRecord(rec))
	}
	return out
}
