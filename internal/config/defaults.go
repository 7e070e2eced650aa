package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultSandboxConfig returns the default sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		World: WorldConfig{
			Width:      160,
			BaseHeight: 18,
			MinSurface: 8,
			MaxSurface: 30,
			DirtDepth:  3,
			BedrockRow: 40,
			MaxStep:    1,
			SideWalls:  true,
			Generator:  world.GeneratorPerlin,
		},
		Noise: NoiseConfig{
			Amplitude: 7,
			Scale:     0.06,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
		},
		Physics: PhysicsConfig{
			Gravity:      40,
			JumpImpulse:  -12,
			MoveSpeed:    6,
			MaxFallSpeed: 20,
		},
		Player: PlayerConfig{
			Width:       0.8,
			Height:      1.8,
			SpawnColumn: -1,
		},
		Hotbar: []block.Kind{block.Dirt, block.Stone, block.Wood, block.Grass},
	}
}
