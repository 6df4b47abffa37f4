package reconcile

import "strings"

// ColumnMapping pairs a source-1 column with its source-2 counterpart.
type ColumnMapping struct {
	ID            string `json:"mapping_id" yaml:"mapping_id"`
	Source1Column string `json:"source1_column" yaml:"source1_column"`
	Source2Column string `json:"source2_column" yaml:"source2_column"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MappingTable answers "which source-2 column corresponds to this one" for rule authors.
// Rule evaluation never consults it.
type MappingTable struct {
	order    []string
	mappings map[string]ColumnMapping
}

// NewMappingTable builds a table from mappings. Rows missing either column are ignored
// and later rows for the same source-1 column win.
func NewMappingTable(mappings ...ColumnMapping) *MappingTable {
	t := &MappingTable{mappings: make(map[string]ColumnMapping)}
	for _, m := range mappings {
		t.Add(m)
	}
	return t
}

// Add registers one mapping. It reports false when the row is incomplete.
func (t *MappingTable) Add(m ColumnMapping) bool {
	m.Source1Column = strings.TrimSpace(m.Source1Column)
	m.Source2Column = strings.TrimSpace(m.Source2Column)
	if m.Source1Column == "" || m.Source2Column == "" {
		return false
	}
	if _, exists := t.mappings[m.Source1Column]; !exists {
		t.order = append(t.order, m.Source1Column)
	}
	t.mappings[m.Source1Column] = m
	return true
}

// Mapped returns the source-2 column for column, or column itself when unmapped.
func (t *MappingTable) Mapped(column string) string {
	if m, ok := t.mappings[column]; ok {
		return m.Source2Column
	}
	return column
}

// All returns the mappings in first-registration order.
func (t *MappingTable) All() []ColumnMapping {
	out := make([]ColumnMapping, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, t.mappings[c])
	}
	return out
}

// Len returns the number of mapped columns.
func (t *MappingTable) Len() int {
	return len(t.order)
}

// Complete fills a rule's blank source-2 columns with the mapped counterparts of its
// source-1 columns. Columns the rule names are left alone.
func (t *MappingTable) Complete(r Rule) Rule {
	if t == nil || t.Len() == 0 {
		return r
	}
	if strings.TrimSpace(r.KeyColumn2) == "" && strings.TrimSpace(r.KeyColumn1) != "" {
		r.KeyColumn2 = t.Mapped(strings.TrimSpace(r.KeyColumn1))
	}
	if strings.TrimSpace(r.CompareColumn2) == "" && strings.TrimSpace(r.CompareColumn1) != "" {
		r.CompareColumn2 = t.Mapped(strings.TrimSpace(r.CompareColumn1))
	}
	return r
}
