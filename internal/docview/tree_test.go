package docview

import (
	"strings"
	"testing"
)

func parseYAMLForTest(t *testing.T, content string) Value {
	t.Helper()
	v, err := Parse(content, FormatYAML)
	if err != nil {
		t.Fatalf("fixture parse failed: %v", err)
	}
	return v
}

func TestBuildTreeRootMapping(t *testing.T) {
	v := parseYAMLForTest(t, "first: 1\nsecond: 2\nthird: 3")
	nodes := BuildTree(v, NewExpandSet())
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	for i, n := range nodes {
		if n.Depth != 0 {
			t.Fatalf("root entries must be depth 0, got %d", n.Depth)
		}
		wantLast := i == 2
		if n.IsLastSibling != wantLast {
			t.Fatalf("node %d IsLastSibling=%v, want %v", i, n.IsLastSibling, wantLast)
		}
	}
}

func TestBuildTreeNestedMapping(t *testing.T) {
	v := parseYAMLForTest(t, "outer:\n  a: 1\n  b: 2")
	nodes := BuildTree(v, NewExpandSet())
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if !nodes[0].Expandable || !nodes[0].Expanded {
		t.Fatalf("outer should be expandable and expanded by default: %+v", nodes[0])
	}
	if nodes[1].Depth != 1 || nodes[2].Depth != 1 {
		t.Fatalf("children should be depth 1")
	}
	if nodes[1].Path != "outer/a" {
		t.Fatalf("unexpected child path %q", nodes[1].Path)
	}
}

func TestBuildTreeCollapse(t *testing.T) {
	v := parseYAMLForTest(t, "outer:\n  a: 1\nother:\n  b: 2")
	es := NewExpandSet()
	es.Collapse("outer")
	nodes := BuildTree(v, es)
	// outer (collapsed, no children), other, other/b
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes with outer collapsed, got %d", len(nodes))
	}
	if nodes[0].Expanded {
		t.Fatalf("outer should be collapsed")
	}
	if !nodes[1].Expanded || nodes[2].Path != "other/b" {
		t.Fatalf("collapsing one node must not affect siblings: %+v", nodes[1])
	}

	es.Toggle("outer")
	nodes = BuildTree(v, es)
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes after re-expanding, got %d", len(nodes))
	}
}

func TestBuildTreeObjectListChildLabels(t *testing.T) {
	v := parseYAMLForTest(t, "steps:\n  - action: one\n  - action: two")
	nodes := BuildTree(v, NewExpandSet())
	var labels []string
	for _, n := range nodes {
		if n.Depth == 1 {
			labels = append(labels, n.Key)
		}
	}
	if len(labels) != 2 || labels[0] != "step 1" || labels[1] != "step 2" {
		t.Fatalf("expected singularized numbered labels, got %v", labels)
	}
}

func TestBuildTreeSimpleListInline(t *testing.T) {
	v := parseYAMLForTest(t, "tags:\n  - go\n  - yaml\n  - trees")
	nodes := BuildTree(v, NewExpandSet())
	if len(nodes) != 1 {
		t.Fatalf("simple list must not expand into children, got %d nodes", len(nodes))
	}
	if nodes[0].Expandable {
		t.Fatalf("simple list must not be expandable")
	}
	if nodes[0].Value.Kind != KindSimpleList || len(nodes[0].Value.Items) != 3 {
		t.Fatalf("unexpected value: %+v", nodes[0].Value)
	}
}

func TestBuildTreeEmptyContainersNotExpandable(t *testing.T) {
	v := mustParse(t, `{"empty_map": {}, "empty_list": []}`, FormatJSON)
	nodes := BuildTree(v, NewExpandSet())
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.Expandable {
			t.Fatalf("empty container %q must not be expandable", n.Key)
		}
	}
}

func TestBuildTreeBlockScalarThreshold(t *testing.T) {
	short := strings.Repeat("a", BlockScalarThreshold)
	long := strings.Repeat("a", BlockScalarThreshold+1)
	v := mustParse(t, `{"short": "`+short+`", "long": "`+long+`"}`, FormatJSON)
	nodes := BuildTree(v, NewExpandSet())
	if nodes[0].Block {
		t.Fatalf("scalar at threshold should render inline")
	}
	if !nodes[1].Block {
		t.Fatalf("scalar over threshold should render as block")
	}
}

func TestBuildTreeRootList(t *testing.T) {
	v := mustParse(t, `[{"a":1},{"b":2}]`, FormatJSON)
	nodes := BuildTree(v, NewExpandSet())
	if nodes[0].Key != "item 1" {
		t.Fatalf("root list children should be item-labeled, got %q", nodes[0].Key)
	}
}

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"steps":       "step",
		"entries":     "entrie", // naive trailing-s strip, kept as-is
		"data":        "data",
		"s":           "s",
		"":            "item",
		"frameworks":  "framework",
		"influences":  "influence",
	}
	for in, want := range cases {
		if got := singularize(in); got != want {
			t.Fatalf("singularize(%q)=%q want %q", in, got, want)
		}
	}
}

func TestExpandSetIndependence(t *testing.T) {
	es := NewExpandSet()
	if !es.IsExpanded("a/b") {
		t.Fatalf("nodes default to expanded")
	}
	es.Collapse("a/b")
	if es.IsExpanded("a/b") || !es.IsExpanded("a") || !es.IsExpanded("a/c") {
		t.Fatalf("collapse must be scoped to one path")
	}
	es.Expand("a/b")
	if !es.IsExpanded("a/b") {
		t.Fatalf("expand should clear collapsed state")
	}
}
