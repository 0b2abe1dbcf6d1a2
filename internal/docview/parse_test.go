package docview

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, content string, f Format) Value {
	t.Helper()
	v, err := Parse(content, f)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return v
}

func TestParseYAMLMapping(t *testing.T) {
	v := mustParse(t, "name: Alan\nage: 5", FormatYAML)
	if v.Kind != KindMapping {
		t.Fatalf("expected mapping, got %s", v.Kind)
	}
	if len(v.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.Entries))
	}
	if v.Entries[0].Key != "name" || v.Entries[0].Value.Scalar != "Alan" {
		t.Fatalf("unexpected first entry: %+v", v.Entries[0])
	}
	if v.Entries[1].Key != "age" || v.Entries[1].Value.Scalar != "5" {
		t.Fatalf("unexpected second entry: %+v", v.Entries[1])
	}
}

func TestParseYAMLMultiDocumentFallback(t *testing.T) {
	v := mustParse(t, "---\n---\nname: Alan\nage: 5", FormatYAML)
	if v.Kind != KindMapping || len(v.Entries) != 2 {
		t.Fatalf("expected 2-entry mapping, got %+v", v)
	}
	if v.Entries[0].Value.Scalar != "Alan" {
		t.Fatalf("expected Alan, got %q", v.Entries[0].Value.Scalar)
	}
}

func TestParseYAMLSecondFragmentRescue(t *testing.T) {
	// First fragment is malformed, second parses; the second wins.
	content := "key: [unclosed\n---\nvalid: yes"
	v := mustParse(t, content, FormatYAML)
	if v.Kind != KindMapping || len(v.Entries) != 1 || v.Entries[0].Key != "valid" {
		t.Fatalf("expected rescue from second fragment, got %+v", v)
	}
}

func TestParseYAMLSingleFragmentErrorPropagates(t *testing.T) {
	_, err := Parse("key: [unclosed", FormatYAML)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Format != FormatYAML {
		t.Fatalf("expected yaml format on error, got %s", perr.Format)
	}
}

func TestParseListClassification(t *testing.T) {
	v := mustParse(t, `["a","b","c"]`, FormatJSON)
	if v.Kind != KindSimpleList {
		t.Fatalf("all-scalar list should be simple, got %s", v.Kind)
	}
	v = mustParse(t, `["a", {"x": 1}]`, FormatJSON)
	if v.Kind != KindObjectList {
		t.Fatalf("mixed list should be object list, got %s", v.Kind)
	}
}

func TestParseJSONPreservesKeyOrder(t *testing.T) {
	v := mustParse(t, `{"zeta":1,"alpha":2,"mid":3}`, FormatJSON)
	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected key order %v, got %v", want, keys)
		}
	}
}

func TestParseJSONScalars(t *testing.T) {
	v := mustParse(t, `{"n": 3.5, "b": true, "z": null, "s": "hi"}`, FormatJSON)
	got := map[string]string{}
	for _, e := range v.Entries {
		got[e.Key] = e.Value.Scalar
	}
	if got["n"] != "3.5" || got["b"] != "true" || got["z"] != "" || got["s"] != "hi" {
		t.Fatalf("unexpected scalar rendering: %v", got)
	}
}

func TestParseCeiling(t *testing.T) {
	big := "key: value\n" + strings.Repeat("x", ParseCeiling)
	_, err := Parse(big, FormatYAML)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for oversized input, got %v", err)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	for _, bad := range []string{`{"a":`, `{"a":1}trailing`, `[1,2`} {
		if _, err := Parse(bad, FormatJSON); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseYAMLAnchorAlias(t *testing.T) {
	content := "base: &b\n  x: 1\ncopy: *b"
	v := mustParse(t, content, FormatYAML)
	if len(v.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.Entries))
	}
	cp := v.Entries[1].Value
	if cp.Kind != KindMapping || len(cp.Entries) != 1 || cp.Entries[0].Key != "x" {
		t.Fatalf("alias not resolved: %+v", cp)
	}
}
