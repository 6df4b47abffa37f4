// Package dataset holds the tabular data model the engines evaluate against.
//
// A Dataset is an ordered list of records sharing one column set. Values are plain Go
// scalars (nil, int64, float64, bool, string) so that CSV files, database rows and JSON
// payloads all normalize into the same shape.
//
// # Registry
//
// Registry stores loaded datasets under canonical names in registration order and only
// answers exact lookups. Rule sheets often refer to sources loosely ("Source_1.csv",
// "bank"), so HintResolver layers the permissive resolution on top:
//
//	reg := dataset.NewRegistry()
//	reg.Register("source1", ledger)
//	reg.Register("source2", bank)
//	ds, ok := dataset.NewHintResolver(reg).Resolve("Source_1.csv")
//
// Engines depend only on the Resolver interface and never learn which strategy is used.
package dataset
