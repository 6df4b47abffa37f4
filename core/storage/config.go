package storage

// Config points the engine at the MinIO or S3-compatible store holding object sources
// and published reports.
type Config struct {
	// Endpoint is host:port. A scheme prefix is stripped.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL switches the client to https.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds source extracts and published reports.
	Bucket string `mapstructure:"bucket" default:"recon"`
	// Region is passed to MakeBucket when the report bucket is created.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, the TLS handshake and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
