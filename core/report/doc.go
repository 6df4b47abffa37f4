// Package report assembles the output of one run.
//
// A Report carries both engine summaries, an Overview of headline metrics with their
// PASS/WARNING/FAIL grading, and the execution log. Reports are written as indented
// JSON named <project>_<YYYYMMDD_HHMMSS>.json, saved to the output directory and
// optionally published to object storage under reports/.
package report
