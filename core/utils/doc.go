// Package utils provides common utility functions for the recon-engine application.
// It includes the scalar conversion helpers shared by the dataset, source and rule
// packages: numeric coercion, report-style rendering of values and loose boolean parsing.
package utils
