package minds

import "strings"

type Category string

const (
	CategoryIdentity     Category = "identity"
	CategoryFrameworks   Category = "frameworks"
	CategoryAnalysis     Category = "analysis"
	CategoryStyle        Category = "style"
	CategoryCases        Category = "cases"
	CategoryArchitecture Category = "architecture"
	CategoryInfluences   Category = "influences"
	CategoryOther        Category = "other"
)

// categoryRules is evaluated in order; the first category with any keyword
// present as a substring wins. Keyword sets overlap (a title can contain
// both "analise" and "case"), so the order is part of the observable
// behavior and must not be rearranged. Matching is substring-based with no
// word-boundary checks; "showcase" lands in cases. That imprecision is
// inherited behavior the dashboard grouping relies on.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryIdentity, []string{"identity", "core", "bio", "formacao", "infancia", "biografia"}},
	{CategoryFrameworks, []string{"framework", "metodologia", "principios", "principles", "mental"}},
	{CategoryAnalysis, []string{"analise", "analysis", "psicolog", "cognitiv", "forensic", "arqueologia"}},
	{CategoryStyle, []string{"estilo", "comunicacao", "aparencia", "maneirismo", "language"}},
	{CategoryCases, []string{"case", "exemplo", "decisoes", "temas", "relatorio", "abrangente"}},
	{CategoryArchitecture, []string{"architecture", "arquitetura", "spec", "technical", "implementation", "implementa"}},
	{CategoryInfluences, []string{"influencia", "espiritual", "valores", "values"}},
}

// OrderedCategories is the display order for bucketed views, matching the
// rule priority with "other" last.
var OrderedCategories = []Category{
	CategoryIdentity,
	CategoryFrameworks,
	CategoryAnalysis,
	CategoryStyle,
	CategoryCases,
	CategoryArchitecture,
	CategoryInfluences,
	CategoryOther,
}

var CategoryLabels = map[Category]string{
	CategoryIdentity:     "Identity & Biography",
	CategoryFrameworks:   "Frameworks & Methods",
	CategoryAnalysis:     "Analysis",
	CategoryStyle:        "Style & Communication",
	CategoryCases:        "Cases & Examples",
	CategoryArchitecture: "Architecture & Specs",
	CategoryInfluences:   "Influences & Values",
	CategoryOther:        "Other",
}

var CategoryIcons = map[Category]string{
	CategoryIdentity:     "user",
	CategoryFrameworks:   "layers",
	CategoryAnalysis:     "search",
	CategoryStyle:        "feather",
	CategoryCases:        "briefcase",
	CategoryArchitecture: "cpu",
	CategoryInfluences:   "heart",
	CategoryOther:        "file",
}

// Categorize assigns exactly one category from the matchable text of the
// artifact. Pure and total: the same artifact always yields the same
// category, and unmatched artifacts fall through to "other".
func Categorize(a Artifact) Category {
	haystack := strings.ToLower(a.Title + " " + a.Slug)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// CategoryBucket is one section of a mind's artifact browser.
type CategoryBucket struct {
	Category  Category   `json:"category"`
	Label     string     `json:"label"`
	Icon      string     `json:"icon"`
	Artifacts []Artifact `json:"artifacts"`
}

// GroupByCategory buckets artifacts in the fixed category order. Empty
// buckets are omitted; artifact order within a bucket follows input order.
func GroupByCategory(artifacts []Artifact) []CategoryBucket {
	byCategory := make(map[Category][]Artifact, len(OrderedCategories))
	for _, a := range artifacts {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	buckets := make([]CategoryBucket, 0, len(byCategory))
	for _, c := range OrderedCategories {
		group, ok := byCategory[c]
		if !ok {
			continue
		}
		buckets = append(buckets, CategoryBucket{
			Category:  c,
			Label:     CategoryLabels[c],
			Icon:      CategoryIcons[c],
			Artifacts: group,
		})
	}
	return buckets
}
