package validate

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Param is a rule parameter. Sheets hold numbers, lists and patterns in the same
// cells, so every scalar is kept as its text.
type Param string

// String returns the trimmed parameter text.
func (p Param) String() string {
	return strings.TrimSpace(string(p))
}

// IsBlank reports whether no parameter was given.
func (p Param) IsBlank() bool {
	return p.String() == ""
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
		return nil
	}
	*p = Param(data)
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*p = Param(strings.Join(items, ","))
		return nil
	}
	if node.Tag == "!!null" {
		*p = ""
		return nil
	}
	*p = Param(node.Value)
	return nil
}
