package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lier-bua/gear-catalog-api/internal/platform/config"
	docstoreport "github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

func TestExitCode_LogsFailureAndReturnsNonZero(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	code := exitCode(zap.New(core), errors.New("listen: address in use"))

	assert.Equal(t, 1, code)
	entries := logs.FilterMessage("api exited").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestExitCode_CleanShutdown(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	assert.Equal(t, 0, exitCode(zap.New(core), nil))
	assert.Zero(t, logs.Len())
}

func TestOpenStore_Backends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, cfg := range []config.Config{
		{StorageBackend: config.BackendMemory},
		{StorageBackend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "gear.db")},
	} {
		store, cleanup, err := openStore(ctx, cfg)
		require.NoError(t, err, cfg.StorageBackend)
		_, err = store.Create(ctx, docstoreport.Members, docstoreport.Document{"name": "Ada"})
		assert.NoError(t, err, cfg.StorageBackend)
		cleanup()
	}
}
