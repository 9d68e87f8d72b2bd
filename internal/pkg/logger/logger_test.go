package logger

import (
	"testing"

	"wallet_networks/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(config.LoggingConfig{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(config.LoggingConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(config.LoggingConfig{Level: "info", Encoding: "xml"})
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Level: "warn", Output: "stderr"})
	assert.NoError(t, err)

	_, err = New(config.LoggingConfig{Level: "warn", Output: "/var/log/x.log"})
	assert.Error(t, err)
}

func TestSlogAdapterWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewSlogAdapter(zap.New(core))

	adapter.Info("registry initialized", "networks", 11)
	adapter.Warn("chain id collision", "chainId", "1")
	adapter.Debug("lookup", "chainId", "137")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "registry initialized", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(11), entries[0].ContextMap()["networks"])
	assert.Equal(t, "1", entries[1].ContextMap()["chainId"])
}
