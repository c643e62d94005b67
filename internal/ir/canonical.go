package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for content addressing:
// object keys sorted by UTF-16 code units, strings NFC normalized, no HTML
// escaping, and no floats or nulls (both rejected with an error). This is
// the only serialization SystemHash consumes; ordinary encoding/json is
// fine for everything else.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareKeysUTF16 orders strings by UTF-16 code units, as canonical JSON
// requires. Go's native string comparison is UTF-8 byte order, which
// differs for characters outside the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

// marshalCanonicalString NFC-normalizes and encodes a string without HTML
// escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// json.Encoder appends a trailing newline.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

// CanonicalJSON renders a SystemIR as canonical JSON bytes. Deterministic
// for identical IRs; used for hashing and golden comparisons.
func CanonicalJSON(s *SystemIR) ([]byte, error) {
	return MarshalCanonical(s.toCanonicalMap())
}

func (s *SystemIR) toCanonicalMap() map[string]any {
	blocks := make([]any, len(s.Blocks))
	for i, b := range s.Blocks {
		blocks[i] = map[string]any{
			"name":         b.Name,
			"forward_in":   b.ForwardIn,
			"forward_out":  b.ForwardOut,
			"backward_in":  b.BackwardIn,
			"backward_out": b.BackwardOut,
		}
	}
	wirings := make([]any, len(s.Wirings))
	for i, w := range s.Wirings {
		wirings[i] = map[string]any{
			"source":      w.Source,
			"target":      w.Target,
			"label":       w.Label,
			"direction":   w.Direction,
			"is_feedback": w.IsFeedback,
			"is_temporal": w.IsTemporal,
			"category":    w.Category,
		}
	}
	m := map[string]any{
		"name":    s.Name,
		"blocks":  blocks,
		"wirings": wirings,
		"source":  s.Source,
	}
	if s.Hierarchy != nil {
		m["hierarchy"] = s.Hierarchy.toCanonicalMap()
	}
	return m
}

func (n *HierarchyNode) toCanonicalMap() map[string]any {
	m := map[string]any{
		"id":   n.ID,
		"name": n.Name,
	}
	if n.CompositionType != "" {
		m["composition_type"] = n.CompositionType
	}
	if n.BlockName != "" {
		m["block_name"] = n.BlockName
	}
	if n.ExitCondition != "" {
		m["exit_condition"] = n.ExitCondition
	}
	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.toCanonicalMap()
		}
		m["children"] = children
	}
	return m
}
