package docview

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseCeiling is the hard parse-size bound, deliberately looser than
// DetectCeiling: extension-named files bypass detection but still must not
// feed the parser unbounded input.
const ParseCeiling = 200000

// ParseError is the only failure this package surfaces. It is always
// recoverable: consumers render the raw content as preformatted text with
// a warning instead of propagating.
type ParseError struct {
	Format Format
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s parse failed: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s parse failed: %s", e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse turns content into a Value tree. format must be FormatYAML or
// FormatJSON; anything else fails immediately.
func Parse(content string, format Format) (Value, error) {
	if len(content) > ParseCeiling {
		return Value{}, &ParseError{Format: format, Reason: fmt.Sprintf("content exceeds %d characters", ParseCeiling)}
	}
	switch format {
	case FormatYAML:
		return parseYAML(content)
	case FormatJSON:
		return parseJSON(content)
	default:
		return Value{}, &ParseError{Format: format, Reason: "unsupported format"}
	}
}

// parseYAML handles front-matter style multi-document input: split on ---
// lines, drop empty fragments, parse the first remaining one. If that
// fails and a second fragment exists, the second is tried before giving up
// (document 1 is often empty front matter with the payload in document 2).
func parseYAML(content string) (Value, error) {
	fragments := splitYAMLDocuments(content)
	if len(fragments) == 0 {
		return Value{}, &ParseError{Format: FormatYAML, Reason: "document is empty"}
	}

	value, err := parseYAMLFragment(fragments[0])
	if err == nil {
		return value, nil
	}
	if len(fragments) > 1 {
		if second, retryErr := parseYAMLFragment(fragments[1]); retryErr == nil {
			return second, nil
		}
	}
	return Value{}, err
}

func splitYAMLDocuments(content string) []string {
	var fragments []string
	var current []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "---" {
			fragments = append(fragments, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	fragments = append(fragments, strings.Join(current, "\n"))

	nonEmpty := fragments[:0]
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return nonEmpty
}

func parseYAMLFragment(fragment string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fragment), &doc); err != nil {
		return Value{}, &ParseError{Format: FormatYAML, Reason: "invalid yaml", Err: err}
	}
	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Value{}, &ParseError{Format: FormatYAML, Reason: "document is empty"}
		}
		node = node.Content[0]
	}
	return fromYAMLNode(node), nil
}

// fromYAMLNode converts a yaml.v3 node tree into a Value. Going through
// yaml.Node instead of a map keeps mapping keys in document order.
func fromYAMLNode(node *yaml.Node) Value {
	if node == nil {
		return scalarValue("")
	}
	switch node.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entries = append(entries, Entry{
				Key:   node.Content[i].Value,
				Value: fromYAMLNode(node.Content[i+1]),
			})
		}
		return mappingValue(entries)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			items = append(items, fromYAMLNode(child))
		}
		return listValue(items)
	default:
		return scalarValue(node.Value)
	}
}

// parseJSON walks the token stream by hand instead of unmarshalling into
// map[string]any, which would lose object key order.
func parseJSON(content string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, &ParseError{Format: FormatJSON, Reason: "invalid json", Err: err}
	}
	// Trailing garbage after the first value is still malformed input.
	if dec.More() {
		return Value{}, &ParseError{Format: FormatJSON, Reason: "unexpected trailing content"}
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return scalarValue(t), nil
	case json.Number:
		return scalarValue(t.String()), nil
	case bool:
		return scalarValue(fmt.Sprintf("%t", t)), nil
	case nil:
		return scalarValue(""), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return mappingValue(entries), nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return listValue(items), nil
}
