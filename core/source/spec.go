package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"recon-engine/core/dataset"
)

// ErrKindNotAllowed marks a source whose kind the caller refuses to load.
var ErrKindNotAllowed = errors.New("source kind not allowed")

// Kind says where a source's rows live.
type Kind string

const (
	KindFile   Kind = "file"
	KindObject Kind = "object"
	KindTable  Kind = "table"
	KindQuery  Kind = "query"
)

// Spec describes one data source of a rule set.
type Spec struct {
	// Name is the reference rules use for this source.
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Kind Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	// Path is the file path, object key, table name or SQL text depending on Kind.
	Path      string `json:"path" yaml:"path" mapstructure:"path"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty" mapstructure:"delimiter"`
	Encoding  string `json:"encoding,omitempty" yaml:"encoding,omitempty" mapstructure:"encoding"`
}

// Validate reports a spec that cannot be loaded.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("source name is required")
	}
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("source %s: path is required", s.Name)
	}
	switch s.kind() {
	case KindFile, KindObject, KindTable, KindQuery:
	default:
		return fmt.Errorf("source %s: unsupported kind %q", s.Name, s.Kind)
	}
	if utf8.RuneCountInString(s.Delimiter) > 1 {
		return fmt.Errorf("source %s: delimiter must be a single character", s.Name)
	}
	return nil
}

// CheckKinds returns ErrKindNotAllowed for the first spec whose kind is not in allowed.
// A blank kind counts as file.
func CheckKinds(specs []Spec, allowed []Kind) error {
	for _, s := range specs {
		if !slices.Contains(allowed, s.kind()) {
			return fmt.Errorf("%w: source %s is %s", ErrKindNotAllowed, s.Name, s.kind())
		}
	}
	return nil
}

func (s Spec) kind() Kind {
	if s.Kind == "" {
		return KindFile
	}
	return Kind(strings.ToLower(string(s.Kind)))
}

// csvOptions picks the delimiter: the configured one, tab for .tsv files, else comma.
func (s Spec) csvOptions() dataset.CSVOptions {
	opts := dataset.CSVOptions{Delimiter: ',', Encoding: s.Encoding}
	switch {
	case s.Delimiter == `\t`:
		opts.Delimiter = '\t'
	case s.Delimiter != "":
		opts.Delimiter, _ = utf8.DecodeRuneInString(s.Delimiter)
	case strings.EqualFold(filepath.Ext(s.Path), ".tsv"):
		opts.Delimiter = '\t'
	}
	return opts
}

func (s Spec) key() string {
	return strings.Join([]string{s.Name, string(s.kind()), s.Path, s.Delimiter, s.Encoding}, "\x00")
}
