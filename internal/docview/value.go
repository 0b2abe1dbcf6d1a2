package docview

// Kind classifies a parsed value for rendering. A list is a SimpleList only
// when every element is a scalar; a single nested element forces ObjectList
// treatment for the whole list.
type Kind int

const (
	KindScalar Kind = iota
	KindSimpleList
	KindMapping
	KindObjectList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSimpleList:
		return "simple_list"
	case KindMapping:
		return "mapping"
	case KindObjectList:
		return "object_list"
	default:
		return "unknown"
	}
}

// Value is the parsed representation of a YAML or JSON document. Mappings
// preserve insertion order for display, which is why this is not a plain
// map[string]any.
type Value struct {
	Kind    Kind
	Scalar  string  // KindScalar: display text (numbers and bools formatted)
	Items   []Value // KindSimpleList / KindObjectList
	Entries []Entry // KindMapping, in document order
}

type Entry struct {
	Key   string
	Value Value
}

func scalarValue(text string) Value {
	return Value{Kind: KindScalar, Scalar: text}
}

// listValue classifies the element slice once: all-scalar lists render as a
// flat badge collection, anything else expands into numbered child nodes.
func listValue(items []Value) Value {
	kind := KindSimpleList
	for _, it := range items {
		if it.Kind != KindScalar {
			kind = KindObjectList
			break
		}
	}
	return Value{Kind: kind, Items: items}
}

func mappingValue(entries []Entry) Value {
	return Value{Kind: KindMapping, Entries: entries}
}

// Empty reports whether the value has nothing to expand into.
func (v Value) Empty() bool {
	switch v.Kind {
	case KindMapping:
		return len(v.Entries) == 0
	case KindSimpleList, KindObjectList:
		return len(v.Items) == 0
	default:
		return v.Scalar == ""
	}
}
