package server

import (
	"strings"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps uploaded rule sets and inline datasets.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
	// ReadTimeoutSeconds bounds reading one request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// SourceKinds lists the source kinds a posted rule set may use, comma separated.
	SourceKinds string `mapstructure:"source_kinds" default:"object,table"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 16 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// ReadTimeout returns the read timeout, defaulting to 30 seconds.
func (c Config) ReadTimeout() time.Duration {
	if c.ReadTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// AllowedSourceKinds returns the lower-cased SourceKinds, defaulting to object and table.
func (c Config) AllowedSourceKinds() []string {
	var kinds []string
	for _, k := range strings.Split(c.SourceKinds, ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return []string{"object", "table"}
	}
	return kinds
}
