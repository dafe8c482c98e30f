package i18n

import (
	"sort"
	"strings"
)

// Dictionary holds the translatable text for one language. Inner nodes are
// groups (mirroring page sections), leaves are strings.
type Dictionary map[string]any

// Resolve walks key (dotted, e.g. "hero.headline1") through d and returns the
// leaf string. When any segment is missing, or the value found is not a
// non-empty string, the key itself is returned so gaps stay visible on the page.
func Resolve(d Dictionary, key string) string {
	var cur any = map[string]any(d)
	for _, seg := range strings.Split(key, ".") {
		group, ok := asGroup(cur)
		if !ok {
			return key
		}
		next, ok := group[seg]
		if !ok || next == nil {
			return key
		}
		cur = next
	}
	if s, ok := cur.(string); ok && s != "" {
		return s
	}
	return key
}

// Flatten returns every leaf of d keyed by its dotted path.
func Flatten(d Dictionary) map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", map[string]any(d))
	return out
}

// Keys returns the sorted dotted keys of d.
func Keys(d Dictionary) []string {
	flat := Flatten(d)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flattenInto(out map[string]string, prefix string, group map[string]any) {
	for k, v := range group {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := asGroup(v); ok {
			flattenInto(out, path, sub)
			continue
		}
		if s, ok := v.(string); ok {
			out[path] = s
		}
	}
}

// asGroup accepts the map shapes produced by yaml.v3 and by literals in tests.
func asGroup(v any) (map[string]any, bool) {
	switch g := v.(type) {
	case map[string]any:
		return g, true
	case Dictionary:
		return map[string]any(g), true
	default:
		return nil, false
	}
}
