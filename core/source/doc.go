// Package source loads the datasets a rule set refers to.
//
// A Spec names a dataset and says where its rows live:
//
//   - file: a delimited text file on local disk
//   - object: a delimited text object in the configured bucket (MinIO or S3)
//   - table: a table in the configured GORM database
//   - query: a SQL query against PostgreSQL through pgx
//
// Loads are deduplicated with singleflight, so concurrent runs asking for the same
// source share one fetch. Loaded datasets are shared and must not be modified.
//
// # Usage
//
//	l := source.NewLoader(source.WithStorage(client, cfg.Storage.Bucket), source.WithDatabase(db))
//	reg, err := l.LoadAll(ctx, ruleSet.Sources)
package source
