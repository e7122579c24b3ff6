package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func TestNewArtifactStore_NoopWithoutBucket(t *testing.T) {
	store := NewArtifactStore(Config{}, testLogger)

	_, err := store.Store(context.Background(), "qrcodes/ev-1.png", []byte("png"), "image/png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}
