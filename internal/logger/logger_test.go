package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		env      string
		enabled  zapcore.Level
		disabled zapcore.Level
		checkOff bool
	}{
		{name: "Local debug", level: "DEBUG", env: "local", enabled: zapcore.DebugLevel},
		{name: "Production warn", level: "warn", env: "production", enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel, checkOff: true},
		{name: "Default env", level: " info ", env: "", enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel, checkOff: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.env)
			require.NoError(t, err)

			assert.True(t, log.Core().Enabled(tt.enabled))
			if tt.checkOff {
				assert.False(t, log.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "local")
	assert.Error(t, err)
}
