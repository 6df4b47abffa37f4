package report

// Config holds run output settings.
type Config struct {
	// Project names the run in report file names.
	Project string `mapstructure:"project" default:"reconciliation"`
	// OutputDir receives report files.
	OutputDir string `mapstructure:"output_dir" default:"./output"`
	// Publish uploads reports to the storage bucket.
	Publish bool `mapstructure:"publish" default:"false"`
	// History records runs in the database.
	History bool `mapstructure:"history" default:"false"`
}
