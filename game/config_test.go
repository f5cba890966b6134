package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.NumSeats)
	assert.Equal(t, 0, cfg.NumAlive)
	assert.Equal(t, 3, cfg.CardsPerRole)
	assert.False(t, cfg.DeadDraw)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, 1, cfg.Games)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("COUP_SEATS", "4")
	t.Setenv("COUP_ALIVE", "3")
	t.Setenv("COUP_DEAD_DRAW", "true")
	t.Setenv("COUP_SEED", "7")
	t.Setenv("COUP_GAMES", "10")
	t.Setenv("COUP_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.NumSeats)
	assert.Equal(t, 3, cfg.NumAlive)
	assert.True(t, cfg.DeadDraw)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 10, cfg.Games)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())

	rules := cfg.Rules()
	assert.Equal(t, uint8(4), rules.NumSeats)
	assert.Equal(t, uint8(3), rules.NumAlive)
	assert.True(t, rules.DeadDraw)
	require.NoError(t, rules.Validate())
}

func TestLevelFallback(t *testing.T) {
	cfg := Config{LogLevel: "shouting"}
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}
