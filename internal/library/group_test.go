package library

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mmoslabs/mmos-backend/internal/types"
)

func bookRow(t *testing.T, title, slug, status string, updatedAt time.Time, meta map[string]any) *types.ContentRecord {
	t.Helper()
	raw, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal meta: %v", err)
	}
	return &types.ContentRecord{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       title,
		ContentType: types.ContentTypeBookSummary,
		Status:      status,
		Metadata:    datatypes.JSON(raw),
		UpdatedAt:   updatedAt,
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"Atomic Habits":           "atomic habits",
		"ATOMIC   HABITS":         "atomic habits",
		"atomic_habits":           "atomic habits",
		"Atomic-Habits!":          "atomic habits",
		"  The 7 Habits: Redux. ": "the 7 habits redux",
		"don't panic":             "don t panic",
		"":                        "",
	}
	for in, want := range cases {
		if got := NormalizeTitle(in); got != want {
			t.Fatalf("NormalizeTitle(%q)=%q want %q", in, got, want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	now := time.Now()
	cases := []struct {
		slug string
		meta map[string]any
		want string
	}{
		{"habits_en", map[string]any{"language": "en"}, LangEN},
		{"habits_en", map[string]any{"language": "de"}, LangEN}, // bad code falls to slug
		{"habits_es", nil, LangES},
		{"habits_pt", nil, LangPT},
		{"habits", nil, LangPT}, // default
		{"habits", map[string]any{"language": 42}, LangPT},
	}
	for _, tc := range cases {
		row := bookRow(t, "Habits", tc.slug, types.StatusDraft, now, tc.meta)
		if got := DetectLanguage(row); got != tc.want {
			t.Fatalf("DetectLanguage(slug=%q meta=%v)=%s want %s", tc.slug, tc.meta, got, tc.want)
		}
	}
}

func TestGroupBooksMergesLanguageVariants(t *testing.T) {
	now := time.Now()
	rows := []*types.ContentRecord{
		bookRow(t, "Atomic Habits", "atomic_habits_en", types.StatusPublished, now,
			map[string]any{"language": "en"}),
		bookRow(t, "Hábitos Atômicos", "habitos_atomicos_pt", types.StatusDraft, now.Add(-time.Hour),
			map[string]any{"language": "pt", "original_title": "Atomic Habits"}),
	}
	books := GroupBooks(rows)
	if len(books) != 1 {
		t.Fatalf("expected 1 merged book, got %d", len(books))
	}
	book := books[0]
	if book.Languages[LangEN] == nil || book.Languages[LangPT] == nil {
		t.Fatalf("expected both language slots populated: %+v", book.Languages)
	}
	if book.Languages[LangPT].Title != "Hábitos Atômicos" {
		t.Fatalf("pt slot holds wrong version")
	}
}

func TestGroupBooksStatusAggregation(t *testing.T) {
	now := time.Now()
	published := GroupBooks([]*types.ContentRecord{
		bookRow(t, "A", "a_en", types.StatusPublished, now, map[string]any{"language": "en"}),
		bookRow(t, "A", "a_pt", types.StatusDraft, now, map[string]any{"language": "pt"}),
	})
	if published[0].Status != types.StatusPublished {
		t.Fatalf("any published version should publish the book, got %s", published[0].Status)
	}

	draft := GroupBooks([]*types.ContentRecord{
		bookRow(t, "B", "b_en", types.StatusArchived, now, map[string]any{"language": "en"}),
		bookRow(t, "B", "b_pt", types.StatusDraft, now, map[string]any{"language": "pt"}),
	})
	if draft[0].Status != types.StatusDraft {
		t.Fatalf("draft should beat archived, got %s", draft[0].Status)
	}

	archived := GroupBooks([]*types.ContentRecord{
		bookRow(t, "C", "c_en", types.StatusArchived, now, map[string]any{"language": "en"}),
	})
	if archived[0].Status != types.StatusArchived {
		t.Fatalf("all-archived should archive the book, got %s", archived[0].Status)
	}
}

func TestGroupBooksCoverFallback(t *testing.T) {
	now := time.Now()
	rows := []*types.ContentRecord{
		bookRow(t, "A", "a_pt", types.StatusDraft, now, map[string]any{"language": "pt"}),
		bookRow(t, "A", "a_en", types.StatusDraft, now, map[string]any{"language": "en", "cover_url": "https://cdn/covers/a_en.png"}),
		bookRow(t, "A", "a_es", types.StatusDraft, now, map[string]any{"language": "es", "cover_url": "https://cdn/covers/a_es.png"}),
	}
	books := GroupBooks(rows)
	if books[0].CoverURL != "https://cdn/covers/a_en.png" {
		t.Fatalf("expected en cover (pt empty, en before es), got %q", books[0].CoverURL)
	}
}

func TestGroupBooksDuplicateLanguageLastWriteWins(t *testing.T) {
	now := time.Now()
	first := bookRow(t, "A", "a_en_old", types.StatusDraft, now, map[string]any{"language": "en"})
	second := bookRow(t, "A", "a_en_new", types.StatusDraft, now, map[string]any{"language": "en"})
	books := GroupBooks([]*types.ContentRecord{first, second})
	if len(books) != 1 {
		t.Fatalf("expected one book, got %d", len(books))
	}
	if books[0].Languages[LangEN].Slug != "a_en_new" {
		t.Fatalf("later row should overwrite the language slot, got %q", books[0].Languages[LangEN].Slug)
	}
}

func TestGroupBooksOrderedByUpdatedAtDesc(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*types.ContentRecord{
		bookRow(t, "Old", "old_en", types.StatusDraft, base, map[string]any{"language": "en"}),
		bookRow(t, "New", "new_en", types.StatusDraft, base.Add(48*time.Hour), map[string]any{"language": "en"}),
		bookRow(t, "Mid", "mid_en", types.StatusDraft, base.Add(24*time.Hour), map[string]any{"language": "en"}),
	}
	books := GroupBooks(rows)
	var titles []string
	for _, b := range books {
		titles = append(titles, b.OriginalTitle)
	}
	if titles[0] != "New" || titles[1] != "Mid" || titles[2] != "Old" {
		t.Fatalf("expected newest-first order, got %v", titles)
	}
}

func TestGroupBooksAggregateUpdatedAt(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*types.ContentRecord{
		bookRow(t, "A", "a_pt", types.StatusDraft, base, map[string]any{"language": "pt"}),
		bookRow(t, "A", "a_en", types.StatusDraft, base.Add(time.Hour), map[string]any{"language": "en"}),
	}
	books := GroupBooks(rows)
	want := base.Add(time.Hour).UTC().Format("2006-01-02T15:04:05Z")
	if books[0].UpdatedAt != want {
		t.Fatalf("expected max updated_at %q, got %q", want, books[0].UpdatedAt)
	}
}

func TestVersionFromRecordRelations(t *testing.T) {
	now := time.Now()
	row := bookRow(t, "A", "a_en", types.StatusPublished, now, map[string]any{
		"language": "en", "page_count": 320, "reading_time": 15,
		"isbn": "978-1", "year": 2018, "has_audio": true, "summary": "short",
	})
	row.Minds = []*types.Mind{{ID: uuid.New(), Slug: "james-clear", Name: "James Clear"}}
	row.Tags = []*types.Tag{
		{Slug: "habits", Name: "Habits", Kind: types.TagKindCategory},
		{Slug: "starters", Name: "Starters", Kind: types.TagKindCollection},
	}
	books := GroupBooks([]*types.ContentRecord{row})
	book := books[0]
	if book.Author == nil || book.Author.Slug != "james-clear" {
		t.Fatalf("author not carried from minds relation: %+v", book.Author)
	}
	if book.Category == nil || book.Category.Slug != "habits" {
		t.Fatalf("category not carried from tags: %+v", book.Category)
	}
	if len(book.Collections) != 1 || book.Collections[0].Slug != "starters" {
		t.Fatalf("collections not carried: %+v", book.Collections)
	}
	v := book.Languages[LangEN]
	if v.PageCount != 320 || v.ReadingTime != 15 || v.ISBN != "978-1" || v.Year != 2018 || !v.HasAudio || v.Summary != "short" {
		t.Fatalf("metadata fields not mapped: %+v", v)
	}
	if book.Views != 0 {
		t.Fatalf("views is a placeholder and must be 0")
	}
}

func TestStats(t *testing.T) {
	now := time.Now()
	rows := []*types.ContentRecord{
		bookRow(t, "A", "a_en", types.StatusPublished, now, map[string]any{"language": "en"}),
		bookRow(t, "B", "b_en", types.StatusDraft, now, map[string]any{"language": "en"}),
		bookRow(t, "C", "c_en", types.StatusArchived, now, map[string]any{"language": "en"}),
	}
	rows[0].Tags = []*types.Tag{{Slug: "starters", Name: "Starters", Kind: types.TagKindCollection}}
	rows[1].Tags = []*types.Tag{{Slug: "starters", Name: "Starters", Kind: types.TagKindCollection}}
	stats := Stats(GroupBooks(rows))
	if stats.Total != 3 || stats.Published != 1 || stats.Draft != 1 || stats.Archived != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.CollectionsCount != 1 {
		t.Fatalf("collections should be deduped across books, got %d", stats.CollectionsCount)
	}
}
