package document

import "strings"

// Document is a schema-less record as returned by the host CMS.
// Values are whatever encoding/json produces: map[string]interface{}, []interface{},
// string, float64 or json.Number, bool and nil.
type Document map[string]interface{}

// Lookup walks a dot-separated path through nested maps.
// The second return value is false when the path is empty or any segment cannot be
// resolved; a present key holding nil reports (nil, true).
func Lookup(doc map[string]interface{}, path string) (interface{}, bool) {
	if path == "" || doc == nil {
		return nil, false
	}

	var current interface{} = doc
	resolved := false
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
		resolved = true
	}

	if !resolved {
		return nil, false
	}
	return current, true
}

// Value is Lookup without the presence flag.
func Value(doc map[string]interface{}, path string) interface{} {
	v, _ := Lookup(doc, path)
	return v
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, m != nil
	case Document:
		return m, m != nil
	default:
		return nil, false
	}
}
