package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content type discriminators for the generic content table.
const (
	ContentTypeBookSummary   = "book_summary"
	ContentTypeMindArtifacts = "mind_artifacts"
	ContentTypeMindPrompts   = "mind_prompts"
	ContentTypeDebate        = "debate"
	ContentTypePRD           = "prd"
	ContentTypeCourse        = "course"
)

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

type ContentRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_content_project_slug,priority:1" json:"project_id"`
	Project     *ContentProject `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex:idx_content_project_slug,priority:2" json:"slug"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Content     string          `gorm:"column:content;type:text" json:"content"`
	ContentType string          `gorm:"column:content_type;not null;index" json:"content_type"`
	Status      string          `gorm:"column:status;not null;default:'draft';index" json:"status"`
	Metadata    datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
	Tags        []*Tag          `gorm:"many2many:content_tag" json:"tags,omitempty"`
	Minds       []*Mind         `gorm:"many2many:content_mind" json:"minds,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentRecord) TableName() string { return "content" }

// Meta decodes the jsonb metadata column. Malformed or empty metadata
// decodes to an empty map so callers never branch on decode errors.
func (r *ContentRecord) Meta() map[string]any {
	if len(r.Metadata) == 0 {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(r.Metadata, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// MetaString returns the metadata value for key when it is a non-empty
// string, otherwise "".
func (r *ContentRecord) MetaString(key string) string {
	if v, ok := r.Meta()[key].(string); ok {
		return v
	}
	return ""
}

// MetaInt returns the metadata value for key coerced to int. JSON numbers
// decode as float64; anything else yields 0.
func (r *ContentRecord) MetaInt(key string) int {
	switch v := r.Meta()[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// MetaBool returns the metadata value for key when it is a bool, else false.
func (r *ContentRecord) MetaBool(key string) bool {
	if v, ok := r.Meta()[key].(bool); ok {
		return v
	}
	return false
}

func ValidContentType(ct string) bool {
	switch ct {
	case ContentTypeBookSummary, ContentTypeMindArtifacts, ContentTypeMindPrompts,
		ContentTypeDebate, ContentTypePRD, ContentTypeCourse:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPublished, StatusDraft, StatusArchived:
		return true
	}
	return false
}
