package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/teamdraft/internal/model"
)

// Keys for persisted session preferences
const (
	KeyRoster   = "valorant-players"
	KeyMapCount = "valorant-map-count"
)

// Storage is a last-write-wins key/value store for JSON documents
type Storage interface {
	// Get returns the stored value, or model.ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load reads and decodes key, returning def if the key is missing or unreadable.
// Failures are logged at debug and never returned.
func Load[T any](ctx context.Context, s Storage, logger *slog.Logger, key string, def T) T {
	data, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrKeyNotFound) {
			logger.Debug("failed to read stored value",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Debug("stored value is corrupt, using default",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return def
	}
	return v
}

// Save encodes and writes value under key
func Save[T any](ctx context.Context, s Storage, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
