package server_test

import (
	"testing"
	"time"

	"recon-engine/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Limits(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		body    int
		timeout time.Duration
	}{
		{"Defaults", server.Config{}, 16 << 20, 30 * time.Second},
		{"Configured", server.Config{BodyLimitMB: 2, ReadTimeoutSeconds: 5}, 2 << 20, 5 * time.Second},
		{"Negative", server.Config{BodyLimitMB: -1, ReadTimeoutSeconds: -1}, 16 << 20, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.body, tt.cfg.BodyLimit())
			assert.Equal(t, tt.timeout, tt.cfg.ReadTimeout())
		})
	}
}

func TestConfig_AllowedSourceKinds(t *testing.T) {
	tests := []struct {
		name  string
		kinds string
		want  []string
	}{
		{"Default", "", []string{"object", "table"}},
		{"Blank entries", " , ", []string{"object", "table"}},
		{"Configured", "File, query ,", []string{"file", "query"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.Config{SourceKinds: tt.kinds}.AllowedSourceKinds())
		})
	}
}
