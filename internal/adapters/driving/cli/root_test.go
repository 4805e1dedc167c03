package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"ingest", "fetch", "ask", "chat", "serve", "mcp", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestIngestCmd_Flags(t *testing.T) {
	require.NotNil(t, ingestCmd.Flags().Lookup("rebuild"))
	require.NotNil(t, ingestCmd.Flags().Lookup("watch"))
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	assert.Error(t, askCmd.Args(askCmd, nil))
	assert.NoError(t, askCmd.Args(askCmd, []string{"why?"}))
}
