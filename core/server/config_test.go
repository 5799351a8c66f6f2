package server_test

import (
	"testing"

	"subtrack/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_RequiresCronAuth(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"Configured", "s3cret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{CronSecret: tt.secret}
			assert.Equal(t, tt.want, c.RequiresCronAuth())
		})
	}
}
