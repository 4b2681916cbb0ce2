package realtime

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Snapshot is an immutable copy of the value stored at a path. Value holds the
// JSON data model: map[string]any, []any, string, float64, bool or nil.
type Snapshot struct {
	Key   string
	Value any
}

// Exists reports whether anything is stored at the path.
func (s Snapshot) Exists() bool {
	return s.Value != nil
}

// Child returns the snapshot of a direct child.
func (s Snapshot) Child(key string) Snapshot {
	switch v := s.Value.(type) {
	case map[string]any:
		return Snapshot{Key: key, Value: v[key]}
	case []any:
		i, err := strconv.Atoi(key)
		if err == nil && i >= 0 && i < len(v) {
			return Snapshot{Key: key, Value: v[i]}
		}
	}
	return Snapshot{Key: key}
}

// Children returns the non-null children ordered by key. Scalars have no children.
func (s Snapshot) Children() []Snapshot {
	switch v := s.Value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k, child := range v {
			if child != nil {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		out := make([]Snapshot, 0, len(keys))
		for _, k := range keys {
			out = append(out, Snapshot{Key: k, Value: v[k]})
		}
		return out
	case []any:
		out := make([]Snapshot, 0, len(v))
		for i, child := range v {
			if child != nil {
				out = append(out, Snapshot{Key: strconv.Itoa(i), Value: child})
			}
		}
		return out
	}
	return nil
}

// Decode converts the value into a Go type through its JSON encoding.
func (s Snapshot) Decode(into any) error {
	raw, err := json.Marshal(s.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}
