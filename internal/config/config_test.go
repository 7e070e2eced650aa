package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultSandboxConfig().Validate())
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg SandboxConfig
	require.NoError(t, yaml.Unmarshal(defaultSandboxYAML, &cfg))
	assert.Equal(t, DefaultSandboxConfig(), cfg)
}

func TestLoadCustomOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  width: 64
  generator: walk
hotbar: [wood, stone]
`)

	cfg, err := LoadSandbox(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.World.Width)
	assert.Equal(t, world.GeneratorWalk, cfg.World.Generator)
	assert.Equal(t, []block.Kind{block.Wood, block.Stone}, cfg.Hotbar)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultSandboxConfig().Physics, cfg.Physics)
	assert.Equal(t, 32, cfg.SpawnColumn())
}

func TestWidePlayerAwayFromWalls(t *testing.T) {
	cfg := DefaultSandboxConfig()
	cfg.Player.Width = 1.2
	cfg.Player.SpawnColumn = 1
	require.NoError(t, cfg.Validate())

	// Without walls the edge columns are open.
	cfg.Player.SpawnColumn = 0
	cfg.World.SideWalls = false
	require.NoError(t, cfg.Validate())
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := LoadSandbox(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown block", "hotbar: [dirt, lava]"},
		{"bedrock in hotbar", "hotbar: [bedrock]"},
		{"empty hotbar", "hotbar: []"},
		{"zero width", "world: {width: 0}"},
		{"negative bedrock", "world: {bedrock_row: -4}"},
		{"upward gravity", "physics: {gravity: -1}"},
		{"downward jump", "physics: {jump_impulse: 3}"},
		{"zero player", "player: {width: 0}"},
		{"player taller than sky", "player: {height: 9}"},
		{"spawn outside world", "player: {spawn_column: 500}"},
		{"wide player against left wall", "player: {width: 1.2, spawn_column: 0}"},
		{"wide player against right wall", "world: {width: 64}\nplayer: {width: 1.2, spawn_column: 63}"},
		{"unknown generator", "world: {generator: caves}"},
		{"malformed yaml", "world: ["},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSandbox(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestWorldParamsRoundTrip(t *testing.T) {
	cfg := DefaultSandboxConfig()
	p := cfg.WorldParams()

	assert.Equal(t, cfg.World.Width, p.Width)
	assert.Equal(t, cfg.World.BedrockRow, p.BedrockRow)
	assert.Equal(t, cfg.Noise.Octaves, p.Noise.Octaves)
	assert.Equal(t, cfg.Physics.JumpImpulse, cfg.PhysicsParams().JumpImpulse)

	cfg.Player.SpawnColumn = 5
	assert.Equal(t, 5, cfg.SpawnColumn())
}
