package docview

import (
	"regexp"
	"strings"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatNone Format = "none"
)

// DetectCeiling bounds content inspection. Documents past this size are
// treated as unstructured regardless of shape.
const DetectCeiling = 50000

var (
	yamlKeyLine    = regexp.MustCompile(`(?m)^\s*[^\s:#][^:\n]*:(\s|$)`)
	yamlListLine   = regexp.MustCompile(`(?m)^\s*- `)
	yamlDocMarker  = regexp.MustCompile(`(?m)^---\s*$`)
	yamlBareKey    = regexp.MustCompile(`(?m)^\s*[^\s:#][^:\n]*:\s*$`)
	yamlBlockScalr = regexp.MustCompile(`(?m)^\s*[^\s:#][^:\n]*:\s*[|>][+-]?\s*$`)
)

// DetectFormat decides how content should be parsed. A .yaml/.yml/.json
// extension on sourceFile is authoritative and skips content inspection
// entirely. Without one, the content must show structural evidence; plain
// prose that happens to contain a colon stays FormatNone and is rendered
// as text by the caller.
func DetectFormat(content, sourceFile string) Format {
	if sourceFile != "" {
		lower := strings.ToLower(sourceFile)
		switch {
		case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
			return FormatYAML
		case strings.HasSuffix(lower, ".json"):
			return FormatJSON
		}
	}

	if len(content) > DetectCeiling {
		return FormatNone
	}

	if looksLikeYAML(content) {
		return FormatYAML
	}
	if looksLikeJSON(content) {
		return FormatJSON
	}
	return FormatNone
}

// looksLikeYAML requires two independent signals: a key or list line, and
// at least one of a document marker, a bare nested-mapping opener, or a
// block-scalar opener. Either alone is too weak.
func looksLikeYAML(content string) bool {
	hasStructure := yamlKeyLine.MatchString(content) || yamlListLine.MatchString(content)
	if !hasStructure {
		return false
	}
	return yamlDocMarker.MatchString(content) ||
		yamlBareKey.MatchString(content) ||
		yamlBlockScalr.MatchString(content)
}

func looksLikeJSON(content string) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < 2 {
		return false
	}
	return (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"))
}
