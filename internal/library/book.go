package library

import (
	"github.com/google/uuid"

	"github.com/mmoslabs/mmos-backend/internal/types"
)

const (
	LangPT = "pt"
	LangEN = "en"
	LangES = "es"
)

// AdminBookVersion is one language-specific rendition of a book, derived
// 1:1 from a book_summary content row.
type AdminBookVersion struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	CoverURL    string    `json:"cover_url"`
	PageCount   int       `json:"page_count"`
	ReadingTime int       `json:"reading_time"`
	ISBN        string    `json:"isbn"`
	Year        int       `json:"year"`
	HasAudio    bool      `json:"has_audio"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`

	// grouping inputs carried off the row, not rendered
	originalTitle string
	author        *BookAuthor
	category      *BookCategory
	collections   []BookCollection
}

type BookAuthor struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

type BookCategory struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type BookCollection struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// AdminBook groups every language version sharing a normalized original
// title into one dashboard aggregate.
type AdminBook struct {
	OriginalTitle string                       `json:"original_title"`
	Author        *BookAuthor                  `json:"author,omitempty"`
	Category      *BookCategory                `json:"category,omitempty"`
	Collections   []BookCollection             `json:"collections"`
	CoverURL      string                       `json:"cover_url"`
	Languages     map[string]*AdminBookVersion `json:"languages"`
	Status        string                       `json:"status"`
	UpdatedAt     string                       `json:"updated_at"`
	Views         int                          `json:"views"` // placeholder, always 0
}

// Dashboard is the grouped payload the books admin UI renders, and the
// unit the cache layer stores.
type Dashboard struct {
	Books []AdminBook    `json:"books"`
	Stats AdminBookStats `json:"stats"`
}

// AdminBookStats are the dashboard headline counts.
type AdminBookStats struct {
	Total            int `json:"total"`
	Published        int `json:"published"`
	Draft            int `json:"draft"`
	Archived         int `json:"archived"`
	CollectionsCount int `json:"collections_count"`
}

// VersionFromRecord reshapes a book_summary row. Missing or malformed
// metadata fields degrade to zero values; the transform never fails.
func VersionFromRecord(rec *types.ContentRecord) AdminBookVersion {
	v := AdminBookVersion{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Title:       rec.Title,
		Language:    DetectLanguage(rec),
		Status:      rec.Status,
		Content:     rec.Content,
		Summary:     rec.MetaString("summary"),
		CoverURL:    rec.MetaString("cover_url"),
		PageCount:   rec.MetaInt("page_count"),
		ReadingTime: rec.MetaInt("reading_time"),
		ISBN:        rec.MetaString("isbn"),
		Year:        rec.MetaInt("year"),
		HasAudio:    rec.MetaBool("has_audio"),
		CreatedAt:   rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	v.originalTitle = rec.MetaString("original_title")
	if v.originalTitle == "" {
		v.originalTitle = rec.Title
	}

	for _, mind := range rec.Minds {
		if mind == nil {
			continue
		}
		v.author = &BookAuthor{ID: mind.ID, Slug: mind.Slug, Name: mind.Name}
		break
	}
	for _, tag := range rec.Tags {
		if tag == nil {
			continue
		}
		switch tag.Kind {
		case types.TagKindCategory:
			if v.category == nil {
				v.category = &BookCategory{Slug: tag.Slug, Name: tag.Name}
			}
		case types.TagKindCollection:
			v.collections = append(v.collections, BookCollection{Slug: tag.Slug, Name: tag.Name})
		}
	}
	return v
}
