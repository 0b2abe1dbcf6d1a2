package docview

import (
	"strings"
	"testing"
)

func TestDetectFormatExtensionWins(t *testing.T) {
	if got := DetectFormat("plain prose", "profile.yaml"); got != FormatYAML {
		t.Fatalf("expected yaml for .yaml extension, got %s", got)
	}
	if got := DetectFormat("plain prose", "notes.YML"); got != FormatYAML {
		t.Fatalf("expected yaml for .yml extension, got %s", got)
	}
	if got := DetectFormat("plain prose", "data.json"); got != FormatJSON {
		t.Fatalf("expected json for .json extension, got %s", got)
	}
	// Extension short-circuits the size ceiling.
	big := strings.Repeat("x", DetectCeiling+10)
	if got := DetectFormat(big, "big.yaml"); got != FormatYAML {
		t.Fatalf("expected yaml for oversized content with .yaml extension, got %s", got)
	}
}

func TestDetectFormatContent(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Format
	}{
		{"yaml with doc marker", "title: x\n---\nfoo: bar", FormatYAML},
		{"yaml with bare key", "parent:\n  child: 1", FormatYAML},
		{"yaml with block scalar", "description: |\n  long text", FormatYAML},
		{"prose with colon", "hello world, this has: punctuation.", FormatNone},
		{"key line alone insufficient", "name: Alan", FormatNone},
		{"doc marker alone insufficient", "---\njust prose here", FormatNone},
		{"json object", `{"a":1}`, FormatJSON},
		{"json array", `[1,2,3]`, FormatJSON},
		{"json with whitespace", "  {\"a\": 1}  ", FormatJSON},
		{"empty", "", FormatNone},
		{"markdown", "# Heading\n\nBody text.", FormatNone},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.content, ""); got != tc.want {
			t.Fatalf("%s: expected %s got %s", tc.name, tc.want, got)
		}
	}
}

func TestDetectFormatSizeCeiling(t *testing.T) {
	// A yaml-looking payload padded with comment lines to an exact size.
	base := "key:\n  nested: 1\n---\n"
	pad := DetectCeiling - len(base)
	atLimit := base + strings.Repeat("#", pad)
	if len(atLimit) != DetectCeiling {
		t.Fatalf("fixture sizing bug: %d", len(atLimit))
	}
	if got := DetectFormat(atLimit, ""); got != FormatYAML {
		t.Fatalf("expected yaml at exactly %d chars, got %s", DetectCeiling, got)
	}
	over := atLimit + "#"
	if got := DetectFormat(over, ""); got != FormatNone {
		t.Fatalf("expected none at %d chars, got %s", DetectCeiling+1, got)
	}
}
