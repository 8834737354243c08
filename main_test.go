package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/config"
)

func TestRenderCommand(t *testing.T) {
	t.Run("Missing game id", func(t *testing.T) {
		err := newCommand().Run(context.Background(), []string{"tictactoe", "render"})

		require.ErrorIs(t, err, errMissingGameID)
	})

	t.Run("Missing config file", func(t *testing.T) {
		err := newCommand().Run(context.Background(), []string{"tictactoe", "--config", "/nonexistent/config.yml", "render", "42"})

		require.Error(t, err)
	})
}

func TestInitLogger(t *testing.T) {
	ctx := context.Background()

	logger := initLogger(&config.Config{LogLevel: "debug"})
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	logger = initLogger(&config.Config{LogLevel: "error"})
	assert.False(t, logger.Enabled(ctx, slog.LevelWarn))

	logger = initLogger(&config.Config{})
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
}
