// Package config provides YAML-based configuration loading for the sandbox.
package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/hotbar"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/physics"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

// SandboxConfig contains all configuration for the sandbox game.
type SandboxConfig struct {
	World   WorldConfig   `yaml:"world"`
	Noise   NoiseConfig   `yaml:"noise"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Hotbar  []block.Kind  `yaml:"hotbar"`
}

// WorldConfig defines terrain layout parameters, in blocks.
type WorldConfig struct {
	Width      int    `yaml:"width"`
	BaseHeight int    `yaml:"base_height"`
	MinSurface int    `yaml:"min_surface"`
	MaxSurface int    `yaml:"max_surface"`
	DirtDepth  int    `yaml:"dirt_depth"`
	BedrockRow int    `yaml:"bedrock_row"`
	MaxStep    int    `yaml:"max_step"`
	SideWalls  bool   `yaml:"side_walls"`
	Generator  string `yaml:"generator"` // "perlin" or "walk"
}

// NoiseConfig defines the Perlin height function.
type NoiseConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Scale     float64 `yaml:"scale"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
}

// PhysicsConfig defines player physics, in blocks per second.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MoveSpeed    float64 `yaml:"move_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// PlayerConfig defines the player's bounding box and spawn.
type PlayerConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnColumn int     `yaml:"spawn_column"` // -1 = middle of the world
}

// WorldParams converts the world and noise sections to generation params.
func (c SandboxConfig) WorldParams() world.Params {
	return world.Params{
		Width:      c.World.Width,
		BaseHeight: c.World.BaseHeight,
		MinSurface: c.World.MinSurface,
		MaxSurface: c.World.MaxSurface,
		DirtDepth:  c.World.DirtDepth,
		BedrockRow: c.World.BedrockRow,
		MaxStep:    c.World.MaxStep,
		SideWalls:  c.World.SideWalls,
		Generator:  c.World.Generator,
		Noise: world.NoiseParams{
			Amplitude: c.Noise.Amplitude,
			Scale:     c.Noise.Scale,
			Alpha:     c.Noise.Alpha,
			Beta:      c.Noise.Beta,
			Octaves:   c.Noise.Octaves,
		},
	}
}

// PhysicsParams converts the physics section.
func (c SandboxConfig) PhysicsParams() physics.Params {
	return physics.Params{
		Gravity:      c.Physics.Gravity,
		JumpImpulse:  c.Physics.JumpImpulse,
		MoveSpeed:    c.Physics.MoveSpeed,
		MaxFallSpeed: c.Physics.MaxFallSpeed,
	}
}

// SpawnColumn resolves the configured spawn column.
func (c SandboxConfig) SpawnColumn() int {
	if c.Player.SpawnColumn < 0 {
		return c.World.Width / 2
	}
	return c.Player.SpawnColumn
}

// Validate reports the first setting that would make the game unplayable.
func (c SandboxConfig) Validate() error {
	if err := c.WorldParams().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	p := c.Physics
	switch {
	case p.Gravity <= 0:
		return fmt.Errorf("config: gravity must be positive, got %g", p.Gravity)
	case p.JumpImpulse >= 0:
		return fmt.Errorf("config: jump_impulse must be negative (upward), got %g", p.JumpImpulse)
	case p.MoveSpeed <= 0:
		return fmt.Errorf("config: move_speed must be positive, got %g", p.MoveSpeed)
	case p.MaxFallSpeed <= 0:
		return fmt.Errorf("config: max_fall_speed must be positive, got %g", p.MaxFallSpeed)
	}

	pl := c.Player
	switch {
	case pl.Width <= 0 || pl.Height <= 0:
		return fmt.Errorf("config: player size must be positive, got %gx%g", pl.Width, pl.Height)
	case pl.Height >= float64(c.World.MinSurface):
		return fmt.Errorf("config: player height %g does not fit above min_surface %d", pl.Height, c.World.MinSurface)
	case pl.SpawnColumn >= c.World.Width:
		return fmt.Errorf("config: spawn_column %d outside world width %d", pl.SpawnColumn, c.World.Width)
	}

	if c.World.SideWalls {
		// The spawned box is centered on its column and may spill into the
		// neighbors; a wall column is solid at every height.
		col := float64(c.SpawnColumn())
		first := int(math.Floor(col + (1-pl.Width)/2))
		last := int(math.Ceil(col+(1+pl.Width)/2)) - 1
		if first < 0 || last >= c.World.Width {
			return fmt.Errorf("config: player width %g at spawn_column %d reaches into the side wall", pl.Width, c.SpawnColumn())
		}
	}

	if _, err := hotbar.New(c.Hotbar); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
