package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/storage"
	"github.com/mcoot/teamdraft/internal/storage/memory"
	"github.com/mcoot/teamdraft/internal/testutil"
)

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestLoad_MissingKeyReturnsDefault(t *testing.T) {
	s := memory.New()

	got := storage.Load(context.Background(), s, testutil.NopLogger(), storage.KeyMapCount, model.DefaultMapCount)

	assert.Equal(t, model.DefaultMapCount, got)
}

func TestLoad_CorruptValueReturnsDefault(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Set(ctx, storage.KeyRoster, []byte("{not json")))

	logger, logs := testutil.BufferLogger()
	got := storage.Load(ctx, s, logger, storage.KeyRoster, []string{})

	assert.Equal(t, []string{}, got)
	assert.Contains(t, logs.String(), "stored value is corrupt")
	assert.Contains(t, logs.String(), `"key":"valorant-players"`)
}

func TestLoad_ReadFailureReturnsDefault(t *testing.T) {
	logger, logs := testutil.BufferLogger()
	got := storage.Load(context.Background(), failingStorage{}, logger, storage.KeyMapCount, model.MapCount(5))

	assert.Equal(t, model.MapCount(5), got)
	assert.Contains(t, logs.String(), "connection refused")
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, storage.Save(ctx, s, storage.KeyRoster, []string{"A", "B"}))

	got := storage.Load(ctx, s, testutil.NopLogger(), storage.KeyRoster, []string(nil))
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestSave_WrapsWriteError(t *testing.T) {
	err := storage.Save(context.Background(), failingStorage{}, storage.KeyMapCount, model.MapCount(3))

	require.Error(t, err)
	assert.Contains(t, err.Error(), storage.KeyMapCount)
}
