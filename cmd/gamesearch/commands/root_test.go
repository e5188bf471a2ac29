package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
)

func TestLogLevelFlagDefaultsToConfig(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)

	c, err := config.Parse([]byte("log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", logLevelFor(c, flag.DefValue))
	assert.Equal(t, "error", logLevelFor(c, "error"))
}
