package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"recon-engine/core/reconcile"
	"recon-engine/core/source"
	"recon-engine/core/validate"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for rule files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported rule set format")

// Format is a rule set encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// RuleSet is everything one run needs.
type RuleSet struct {
	Project        string                    `json:"project" yaml:"project"`
	Sources        []source.Spec             `json:"sources" yaml:"sources"`
	Mappings       []reconcile.ColumnMapping `json:"column_mappings,omitempty" yaml:"column_mappings,omitempty"`
	Reconciliation []reconcile.Rule          `json:"reconciliation_rules,omitempty" yaml:"reconciliation_rules,omitempty"`
	Validation     []validate.Rule           `json:"validation_rules,omitempty" yaml:"validation_rules,omitempty"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a rule set file. Relative file source paths resolve against the
// rule file's directory.
func Load(path string) (*RuleSet, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}
	set, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	set.resolvePaths(filepath.Dir(path))
	return set, nil
}

// Parse decodes a rule set. Unknown fields are rejected.
func Parse(data []byte, format Format) (*RuleSet, error) {
	var set RuleSet
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse rule set: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return nil, fmt.Errorf("failed to parse rule set: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if set.Project == "" {
		set.Project = "reconciliation"
	}
	return &set, nil
}

func (s *RuleSet) resolvePaths(base string) {
	for i, spec := range s.Sources {
		if (spec.Kind == "" || spec.Kind == source.KindFile) && spec.Path != "" && !filepath.IsAbs(spec.Path) {
			s.Sources[i].Path = filepath.Join(base, spec.Path)
		}
	}
}

// MappingTable returns the rule set's column mappings.
func (s *RuleSet) MappingTable() *reconcile.MappingTable {
	return reconcile.NewMappingTable(s.Mappings...)
}
