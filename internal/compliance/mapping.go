package compliance

import (
	"fmt"
	"sort"
)

// FrameworkUnspecified is the synthetic framework key assigned to legacy
// flat-list control mappings that carry no framework attribution.
const FrameworkUnspecified = "_unspecified"

// FrameworkMapping relates framework names to external control IDs. ID
// slices are always deduplicated and sorted so equal inputs produce equal
// mappings.
type FrameworkMapping map[string][]string

// ControlCount returns the total number of mapped control IDs across all
// framework keys.
func (m FrameworkMapping) ControlCount() int {
	n := 0
	for _, ids := range m {
		n += len(ids)
	}
	return n
}

// Merge unions other into m per framework key and returns m.
func (m FrameworkMapping) Merge(other FrameworkMapping) FrameworkMapping {
	for fw, ids := range other {
		m[fw] = dedupeSorted(append(m[fw], ids...))
	}
	return m
}

// Frameworks returns the framework keys in sorted order.
func (m FrameworkMapping) Frameworks() []string {
	keys := make([]string, 0, len(m))
	for fw := range m {
		keys = append(keys, fw)
	}
	sort.Strings(keys)
	return keys
}

// ResolveMappedControls normalizes an article's mapped-controls field into a
// per-framework mapping. The field exists in two historical shapes: a flat
// list of control IDs (legacy, attributed to FrameworkUnspecified) and a map
// of framework name to ID list (current). Resolution is total: nil yields an
// empty mapping, and unknown or partially malformed shapes yield whatever
// could be salvaged plus warnings for the caller to log. It never fails —
// reports must still render with partial data.
func ResolveMappedControls(v any) (FrameworkMapping, []string) {
	mapping := FrameworkMapping{}
	if v == nil {
		return mapping, nil
	}

	var warnings []string
	switch val := v.(type) {
	case []string:
		if len(val) > 0 {
			mapping[FrameworkUnspecified] = dedupeSorted(append([]string(nil), val...))
		}
	case []any:
		ids, warns := stringList(val, FrameworkUnspecified)
		warnings = append(warnings, warns...)
		if len(ids) > 0 {
			mapping[FrameworkUnspecified] = dedupeSorted(ids)
		}
	case map[string][]string:
		for fw, ids := range val {
			if len(ids) > 0 {
				mapping[fw] = dedupeSorted(append([]string(nil), ids...))
			}
		}
	case map[string]any:
		for fw, raw := range val {
			ids, warns := resolveFrameworkValue(fw, raw)
			warnings = append(warnings, warns...)
			if len(ids) > 0 {
				mapping[fw] = dedupeSorted(ids)
			}
		}
	default:
		err := &InputError{Field: "mapped_controls", Reason: fmt.Sprintf("unsupported shape %T", v)}
		warnings = append(warnings, err.Error())
	}
	return mapping, warnings
}

// ResolveRegulationMappings resolves and merges the mapped controls of every
// article in a regulation, sub-articles included, into one per-framework
// mapping. Warnings from individual articles are prefixed with the article
// ID so malformed reference data can be traced to its source.
func ResolveRegulationMappings(reg Regulation) (FrameworkMapping, []string) {
	merged := FrameworkMapping{}
	var warnings []string
	var walk func(articles []Article)
	walk = func(articles []Article) {
		for _, a := range articles {
			mapping, warns := ResolveMappedControls(a.MappedControls)
			merged.Merge(mapping)
			for _, w := range warns {
				warnings = append(warnings, fmt.Sprintf("article %s: %s", a.ID, w))
			}
			walk(a.SubArticles)
		}
	}
	walk(reg.Articles)
	return merged, warnings
}

func resolveFrameworkValue(fw string, raw any) ([]string, []string) {
	switch ids := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), ids...), nil
	case []any:
		return stringList(ids, fw)
	case string:
		// A bare string is tolerated as a one-element list.
		return []string{ids}, nil
	default:
		err := &InputError{Field: "mapped_controls." + fw, Reason: fmt.Sprintf("expected ID list, got %T", raw)}
		return nil, []string{err.Error()}
	}
}

func stringList(raw []any, context string) ([]string, []string) {
	var ids []string
	var warnings []string
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			err := &InputError{Field: "mapped_controls." + context, Reason: fmt.Sprintf("non-string control ID %v", item)}
			warnings = append(warnings, err.Error())
			continue
		}
		ids = append(ids, s)
	}
	return ids, warnings
}

func dedupeSorted(ids []string) []string {
	sort.Strings(ids)
	out := ids[:0]
	var prev string
	for i, id := range ids {
		if i == 0 || id != prev {
			out = append(out, id)
		}
		prev = id
	}
	return out
}
