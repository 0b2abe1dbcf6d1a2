package docview

import (
	"fmt"
	"strings"
)

// BlockScalarThreshold is the presentation cutoff: scalars longer than this
// render as a multi-line block instead of inline. Layout only, not a data
// model distinction.
const BlockScalarThreshold = 60

// Node is the flattened view-model row for one (key, value) pair.
type Node struct {
	Key           string
	Value         Value
	Path          string
	Depth         int
	IsLastSibling bool
	Expandable    bool
	Expanded      bool
	Block         bool
}

// ExpandSet owns the transient expand/collapse state, separate from the
// parsed data. Nodes default to expanded, so the set records collapsed
// paths. Toggling one node never touches siblings or ancestors.
type ExpandSet struct {
	collapsed map[string]struct{}
}

func NewExpandSet() *ExpandSet {
	return &ExpandSet{collapsed: make(map[string]struct{})}
}

func (s *ExpandSet) IsExpanded(path string) bool {
	if s == nil {
		return true
	}
	_, collapsed := s.collapsed[path]
	return !collapsed
}

func (s *ExpandSet) Collapse(path string) {
	s.collapsed[path] = struct{}{}
}

func (s *ExpandSet) Expand(path string) {
	delete(s.collapsed, path)
}

func (s *ExpandSet) Toggle(path string) {
	if s.IsExpanded(path) {
		s.Collapse(path)
	} else {
		s.Expand(path)
	}
}

// BuildTree flattens a parsed value into display order. Collapsed nodes
// keep their toggle affordance but contribute no children. A nil expanded
// set renders everything expanded.
func BuildTree(root Value, expanded *ExpandSet) []Node {
	var nodes []Node
	switch root.Kind {
	case KindMapping:
		nodes = appendEntries(nodes, root.Entries, "", 0, expanded)
	case KindSimpleList, KindObjectList:
		// A bare document-level list gets synthetic "item N" keys.
		nodes = appendListChildren(nodes, root, "item", "", 0, expanded)
	default:
		nodes = appendNode(nodes, "", root, "", 0, true, expanded)
	}
	return nodes
}

func appendEntries(nodes []Node, entries []Entry, parentPath string, depth int, expanded *ExpandSet) []Node {
	for i, entry := range entries {
		last := i == len(entries)-1
		nodes = appendNode(nodes, entry.Key, entry.Value, parentPath, depth, last, expanded)
	}
	return nodes
}

func appendNode(nodes []Node, key string, value Value, parentPath string, depth int, last bool, expanded *ExpandSet) []Node {
	path := joinPath(parentPath, key)
	node := Node{
		Key:           key,
		Value:         value,
		Path:          path,
		Depth:         depth,
		IsLastSibling: last,
		Expandable:    expandable(value),
		Block:         value.Kind == KindScalar && len(value.Scalar) > BlockScalarThreshold,
	}
	node.Expanded = node.Expandable && expanded.IsExpanded(path)
	nodes = append(nodes, node)

	if !node.Expanded {
		return nodes
	}
	switch value.Kind {
	case KindMapping:
		nodes = appendEntries(nodes, value.Entries, path, depth+1, expanded)
	case KindObjectList:
		nodes = appendListChildren(nodes, value, singularize(key), path, depth+1, expanded)
	}
	return nodes
}

func appendListChildren(nodes []Node, list Value, childLabel string, parentPath string, depth int, expanded *ExpandSet) []Node {
	for i, item := range list.Items {
		key := fmt.Sprintf("%s %d", childLabel, i+1)
		last := i == len(list.Items)-1
		nodes = appendNode(nodes, key, item, parentPath, depth, last, expanded)
	}
	return nodes
}

// expandable: non-empty mappings and non-empty object lists get a toggle.
// Simple lists render inline as badges and never expand.
func expandable(v Value) bool {
	switch v.Kind {
	case KindMapping:
		return len(v.Entries) > 0
	case KindObjectList:
		return len(v.Items) > 0
	default:
		return false
	}
}

// singularize strips a trailing "s" so "steps" labels its children
// "step 1", "step 2". Known to be naive for irregular plurals and
// non-English keys; label text only.
func singularize(key string) string {
	if key == "" {
		return "item"
	}
	trimmed := strings.TrimSuffix(key, "s")
	if trimmed == "" {
		return key
	}
	return trimmed
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}
