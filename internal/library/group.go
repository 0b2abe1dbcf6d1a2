package library

import (
	"sort"
	"strings"

	"github.com/mmoslabs/mmos-backend/internal/types"
)

var titlePunctuation = strings.NewReplacer(
	"_", " ", "-", " ", ",", " ", ".", " ", ":", " ", ";", " ",
	"!", " ", "?", " ", "'", " ", `"`, " ", "(", " ", ")", " ",
)

// NormalizeTitle produces the grouping key for a book title: lower-cased,
// punctuation replaced with spaces, whitespace collapsed. Never displayed.
func NormalizeTitle(title string) string {
	lowered := strings.ToLower(title)
	spaced := titlePunctuation.Replace(lowered)
	return strings.Join(strings.Fields(spaced), " ")
}

// DetectLanguage resolves a row's language: metadata.language when it is
// one of the three supported codes, else a slug suffix, else pt. Total —
// every row gets a language slot.
func DetectLanguage(rec *types.ContentRecord) string {
	switch rec.MetaString("language") {
	case LangPT:
		return LangPT
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	}
	switch {
	case strings.HasSuffix(rec.Slug, "_pt"):
		return LangPT
	case strings.HasSuffix(rec.Slug, "_en"):
		return LangEN
	case strings.HasSuffix(rec.Slug, "_es"):
		return LangES
	}
	return LangPT
}

// GroupBooks partitions book_summary rows by normalized original title and
// folds each partition into one AdminBook. Two rows in a partition mapping
// to the same language overwrite silently, last in iteration order wins.
// Output is ordered by aggregate UpdatedAt, newest first.
func GroupBooks(rows []*types.ContentRecord) []AdminBook {
	order := make([]string, 0, len(rows))
	groups := make(map[string][]AdminBookVersion, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		version := VersionFromRecord(row)
		key := NormalizeTitle(version.originalTitle)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], version)
	}

	books := make([]AdminBook, 0, len(groups))
	for _, key := range order {
		books = append(books, foldGroup(groups[key]))
	}

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].UpdatedAt > books[j].UpdatedAt
	})
	return books
}

func foldGroup(versions []AdminBookVersion) AdminBook {
	book := AdminBook{
		Languages:   make(map[string]*AdminBookVersion, 3),
		Collections: []BookCollection{},
	}

	seenCollections := map[string]bool{}
	for i := range versions {
		v := &versions[i]
		if book.OriginalTitle == "" {
			book.OriginalTitle = v.originalTitle
		}
		if book.Author == nil && v.author != nil {
			book.Author = v.author
		}
		if book.Category == nil && v.category != nil {
			book.Category = v.category
		}
		for _, coll := range v.collections {
			if !seenCollections[coll.Slug] {
				seenCollections[coll.Slug] = true
				book.Collections = append(book.Collections, coll)
			}
		}
		// Same-language duplicates overwrite, last write wins.
		book.Languages[v.Language] = v
		if v.UpdatedAt > book.UpdatedAt {
			book.UpdatedAt = v.UpdatedAt
		}
	}

	book.Status = aggregateStatus(book.Languages)
	book.CoverURL = coverFallback(book.Languages)
	return book
}

// aggregateStatus: published beats draft beats archived across versions.
func aggregateStatus(languages map[string]*AdminBookVersion) string {
	status := types.StatusArchived
	hasDraft := false
	for _, v := range languages {
		if v == nil {
			continue
		}
		if v.Status == types.StatusPublished {
			return types.StatusPublished
		}
		if v.Status == types.StatusDraft {
			hasDraft = true
		}
	}
	if hasDraft {
		return types.StatusDraft
	}
	return status
}

// coverFallback returns the first non-empty cover checking pt, en, es in
// that fixed order.
func coverFallback(languages map[string]*AdminBookVersion) string {
	for _, lang := range []string{LangPT, LangEN, LangES} {
		if v := languages[lang]; v != nil && v.CoverURL != "" {
			return v.CoverURL
		}
	}
	return ""
}

// Stats derives the dashboard counts from grouped books.
func Stats(books []AdminBook) AdminBookStats {
	stats := AdminBookStats{Total: len(books)}
	collections := map[string]bool{}
	for _, b := range books {
		switch b.Status {
		case types.StatusPublished:
			stats.Published++
		case types.StatusDraft:
			stats.Draft++
		case types.StatusArchived:
			stats.Archived++
		}
		for _, coll := range b.Collections {
			collections[coll.Slug] = true
		}
	}
	stats.CollectionsCount = len(collections)
	return stats
}
