// Package rules reads rule set files.
//
// A rule set names its data sources, optional column mappings and the reconciliation
// and validation rules to run against them. Files are YAML (.yaml, .yml) or JSON
// (.json). Lint reports problems a run would only reveal as SKIP or ERROR results.
//
// Rules may carry a natural language description instead of, or in addition to,
// structured fields. A Translator turns that text into fields, and FillBlanks copies
// them onto the rule without overriding anything the author set.
package rules
