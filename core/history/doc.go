// Package history records finished runs in the configured database.
//
// Each Run row keeps the overview numbers and the full report document; RunResult
// rows keep every non-PASS finding so failures can be listed without decoding
// reports. The schema is created with GORM AutoMigrate when the store opens.
package history
