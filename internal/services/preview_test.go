package services

import (
	"strings"
	"testing"

	"github.com/mmoslabs/mmos-backend/internal/docview"
)

func TestPreviewTextStructured(t *testing.T) {
	svc := NewDocumentPreviewService(testLogger(t), nil)
	result := svc.PreviewText("name: Alan\nage: 5", "profile.yaml")
	if result.Format != docview.FormatYAML {
		t.Fatalf("expected yaml, got %s", result.Format)
	}
	if len(result.Nodes) != 2 || result.Warning != "" || result.Raw != "" {
		t.Fatalf("expected clean tree result: %+v", result)
	}
}

func TestPreviewTextUndetected(t *testing.T) {
	svc := NewDocumentPreviewService(testLogger(t), nil)
	content := "just some prose, nothing structured."
	result := svc.PreviewText(content, "")
	if result.Format != docview.FormatNone {
		t.Fatalf("expected none, got %s", result.Format)
	}
	if result.Raw != content || result.Warning != "" {
		t.Fatalf("undetected content is raw text without a warning: %+v", result)
	}
}

func TestPreviewTextParseFailureFallsBack(t *testing.T) {
	svc := NewDocumentPreviewService(testLogger(t), nil)
	content := "{broken json"
	result := svc.PreviewText(content, "data.json")
	if result.Format != docview.FormatJSON {
		t.Fatalf("format should reflect the attempted parse, got %s", result.Format)
	}
	if result.Raw != content {
		t.Fatalf("fallback must carry the raw content")
	}
	if !strings.Contains(result.Warning, "json") {
		t.Fatalf("fallback must carry a warning: %q", result.Warning)
	}
	if len(result.Nodes) != 0 {
		t.Fatalf("no nodes on fallback")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Atomic Habits":        "atomic_habits",
		"  A  B  ":             "a_b",
		"Hábitos!":             "h_bitos",
		"already_slugged":      "already_slugged",
		"Ends With Symbols!!!": "ends_with_symbols",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q)=%q want %q", in, got, want)
		}
	}
}
