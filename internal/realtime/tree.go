package realtime

import (
	"encoding/json"
	"fmt"
)

// normalize turns any JSON encodable Go value into the JSON data model and drops
// empty objects, mirroring how the hosted database never stores empty nodes.
func normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return prune(out), nil
}

func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			child = prune(child)
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = child
		}
		if len(t) == 0 {
			return nil
		}
		return t
	case []any:
		empty := true
		for i, child := range t {
			t[i] = prune(child)
			if t[i] != nil {
				empty = false
			}
		}
		if empty {
			return nil
		}
		return t
	}
	return v
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}
		return out
	}
	return v
}

// lookup returns the value stored under parts, or nil.
func lookup(root any, parts []string) any {
	cur := root
	for _, p := range parts {
		cur = Snapshot{Value: cur}.Child(p).Value
		if cur == nil {
			return nil
		}
	}
	return cur
}

// assign stores value under parts inside root and returns the new root. A nil value
// deletes the node and prunes parents left empty.
func assign(root any, parts []string, value any) any {
	if len(parts) == 0 {
		return value
	}

	node, ok := root.(map[string]any)
	if !ok {
		node = arrayToMap(root)
	}

	head := parts[0]
	child := assign(node[head], parts[1:], value)
	if child == nil {
		delete(node, head)
	} else {
		node[head] = child
	}

	if len(node) == 0 {
		return nil
	}
	return node
}

func arrayToMap(v any) map[string]any {
	out := make(map[string]any)
	if arr, ok := v.([]any); ok {
		snap := Snapshot{Value: arr}
		for _, c := range snap.Children() {
			out[c.Key] = c.Value
		}
	}
	return out
}
