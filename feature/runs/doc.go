// Package runs is the HTTP feature that executes rule sets.
//
// A Service loads the sources a rule set names, runs the reconciliation and validation
// engines side by side and assembles the report. Reports are written to the output
// directory, published to the storage bucket and recorded in the run history when the
// run configuration enables each step.
//
// # Routes
//
//   - POST /runs                  execute a rule set (JSON, or YAML with a yaml content type)
//   - POST /runs/validate-rules   lint a rule set without running it
//   - GET  /runs                  list recorded runs
//   - GET  /runs/:id              one recorded run with its report
//   - GET  /metrics               Prometheus counters
package runs
