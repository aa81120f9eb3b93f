package forms

import (
	"strconv"
	"strings"
)

// FormState is the flat key-value snapshot of one assessment session's
// user input. Values are one of: text, boolean, number-as-text, or a
// string list. There are no nested objects; every field is addressed by
// a flat key chosen by the calling form. An absent key is equivalent to
// an empty value; no field is ever required to be present.
//
// The zero value of a nil map is usable for reads.
type FormState map[string]any

// New creates an empty form state
func New() FormState {
	return make(FormState)
}

// Set stores a field value, normalising JSON-decoded shapes. Setting an
// empty value removes the key so that stored blobs stay minimal and the
// absent-equals-empty invariant holds after round-trips.
func (f FormState) Set(key string, value any) {
	switch v := value.(type) {
	case nil:
		delete(f, key)
	case string:
		if v == "" {
			delete(f, key)
			return
		}
		f[key] = v
	case bool:
		if !v {
			delete(f, key)
			return
		}
		f[key] = v
	case []string:
		if len(v) == 0 {
			delete(f, key)
			return
		}
		f[key] = v
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				list = append(list, s)
			}
		}
		if len(list) == 0 {
			delete(f, key)
			return
		}
		f[key] = list
	case float64:
		// JSON numbers arrive as float64; stored as number-as-text.
		f[key] = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		f[key] = strconv.Itoa(v)
	default:
		delete(f, key)
	}
}

// Text returns the field as a string, or "" when absent or not text
func (f FormState) Text(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns the field as a boolean. Absent or non-boolean is false.
func (f FormState) Bool(key string) bool {
	if b, ok := f[key].(bool); ok {
		return b
	}
	return false
}

// List returns the field as a string list, preserving insertion order
func (f FormState) List(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return list
	}
	return nil
}

// Number parses a number-as-text field. Malformed or absent input
// reports ok=false, never an error.
func (f FormState) Number(key string) (float64, bool) {
	s := strings.TrimSpace(f.Text(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Int parses an integer field, truncating any decimal part
func (f FormState) Int(key string) (int, bool) {
	n, ok := f.Number(key)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// Truthy reports whether the field holds a non-empty value of any kind
func (f FormState) Truthy(key string) bool {
	switch v := f[key].(type) {
	case string:
		return v != ""
	case bool:
		return v
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return false
}

// Clone returns a shallow copy with list values duplicated
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}
