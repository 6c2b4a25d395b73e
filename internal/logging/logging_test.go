package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Relay/internal/config"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	assert.Equal(t, zerolog.DebugLevel, SetLevel("debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.Equal(t, zerolog.WarnLevel, SetLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, SetLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, SetLevel(""))
}

func TestSetupWritesRotatingFile(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "relay.log")
	closer := Setup(cfg)

	log.Info().Str("module", "test").Msg("hello file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello file"`)
	assert.Contains(t, string(data), `"module":"test"`)
}
