package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "repocreator", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Subcommands(t *testing.T) {
	expected := []string{"create", "serve", "init"}

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == name {
					found = true
					break
				}
			}
			assert.True(t, found, "expected %q to be registered", name)
		})
	}
}

func TestCreateCommand_Flags(t *testing.T) {
	configFlag := createCmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)

	orgFlag := createCmd.Flags().Lookup("org")
	require.NotNil(t, orgFlag)
}

func TestServeCommand_Flags(t *testing.T) {
	listenFlag := serveCmd.Flags().Lookup("listen")
	require.NotNil(t, listenFlag)
}
