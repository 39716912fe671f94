package main

import (
	"testing"

	"chore-coin-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd(logger.NewNop())

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("shutdown-timeout"))

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", migrate.Name())
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	root := newRootCmd(logger.NewNop())
	root.SetArgs([]string{"migrate", "sideways"})

	err := root.Execute()
	assert.Error(t, err)
}
