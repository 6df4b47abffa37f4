// Package validate checks a single dataset's column values against quality constraints.
//
// Every rule names a data source, a column and a check kind. ParseCheck turns the kind
// and its two free-form parameters into a typed Check (Between{Min, Max},
// RegexMatch{Pattern}, ...), and Evaluate dispatches on the concrete type, so an
// unhandled kind is a compile-time concern rather than a silent lookup miss.
//
// A rule emits one FAIL Result per offending record, or exactly one PASS Result when
// no record fails. A rule whose source or column cannot be found, or whose pattern does
// not compile, emits one ERROR Result and still counts as executed.
//
// Summary accounting keeps two counting styles side by side: records_with_errors and
// records_with_warnings count FAIL results per rule severity, while records_passed is
// total_records minus the number of distinct failing record keys.
package validate
