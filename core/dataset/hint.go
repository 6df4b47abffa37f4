package dataset

import (
	"path/filepath"
	"strings"
)

var tabularExtensions = map[string]struct{}{
	".csv": {}, ".tsv": {}, ".txt": {}, ".xlsx": {}, ".xls": {}, ".json": {},
}

// HintResolver resolves loose references such as "Source_1.csv" against a Registry.
//
// Resolution order: exact name, then substring containment in either direction on
// normalized names (registration order decides ties), then a positional fallback where
// a reference mentioning "1" means the first registered source and "2" the second.
// A blank reference means the first registered source.
type HintResolver struct {
	registry *Registry
}

// NewHintResolver wraps a registry with permissive resolution.
func NewHintResolver(r *Registry) *HintResolver {
	return &HintResolver{registry: r}
}

// Resolve implements Resolver.
func (h *HintResolver) Resolve(ref string) (*Dataset, bool) {
	if ds, ok := h.registry.Resolve(ref); ok {
		return ds, true
	}

	want := normalizeRef(ref)
	if want == "" {
		return h.registry.First()
	}

	for _, name := range h.registry.order {
		have := normalizeRef(name)
		if have == "" {
			continue
		}
		if strings.Contains(want, have) || strings.Contains(have, want) {
			return h.registry.sets[name], true
		}
	}

	switch {
	case strings.Contains(want, "source1") || strings.Contains(want, "1"):
		return h.registry.At(0)
	case strings.Contains(want, "source2") || strings.Contains(want, "2"):
		return h.registry.At(1)
	}
	return nil, false
}

// normalizeRef lower-cases a reference, drops a tabular file extension and removes
// separator characters.
func normalizeRef(ref string) string {
	s := strings.ToLower(strings.TrimSpace(ref))
	if ext := filepath.Ext(s); ext != "" {
		if _, ok := tabularExtensions[ext]; ok {
			s = strings.TrimSuffix(s, ext)
		}
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, s)
}

// First returns the first registered dataset.
func (h *HintResolver) First() (*Dataset, bool) {
	return h.registry.First()
}
