// Package block defines the closed set of block kinds and their static
// properties. Lookups go through a table keyed by Kind; there is no
// per-block behavior dispatch.
package block

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// Kind identifies a block material.
type Kind uint8

const (
	Air Kind = iota
	Dirt
	Stone
	Wood
	Grass
	Bedrock

	kindCount
)

// Properties are the static attributes of a block kind.
type Properties struct {
	Name      string
	Solid     bool
	Breakable bool
	Glyph     rune       // rendered twice per block in the terminal
	Color     core.Color // foreground color of the glyph
}

var table = [kindCount]Properties{
	Air:     {Name: "air", Glyph: ' ', Color: core.ColorDefault},
	Dirt:    {Name: "dirt", Solid: true, Breakable: true, Glyph: '▓', Color: core.ColorBrown},
	Stone:   {Name: "stone", Solid: true, Breakable: true, Glyph: '▒', Color: core.ColorGray},
	Wood:    {Name: "wood", Solid: true, Breakable: true, Glyph: '▤', Color: core.ColorOrange},
	Grass:   {Name: "grass", Solid: true, Breakable: true, Glyph: '▀', Color: core.ColorGreen},
	Bedrock: {Name: "bedrock", Solid: true, Breakable: false, Glyph: '█', Color: core.ColorDarkGray},
}

// Kinds returns every block kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Air; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// MustProps returns the properties of k.
// An undeclared kind is a programming error and panics.
func MustProps(k Kind) Properties {
	if !k.Valid() {
		panic(fmt.Sprintf("block: unknown kind %d", k))
	}
	return table[k]
}

// Solid reports whether k blocks movement.
func (k Kind) Solid() bool {
	return MustProps(k).Solid
}

// Breakable reports whether k can be removed by the player.
func (k Kind) Breakable() bool {
	return MustProps(k).Breakable
}

// Placeable reports whether k may be put into the world by the player.
func (k Kind) Placeable() bool {
	return k != Air && k != Bedrock && k.Valid()
}

// String returns the block name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", k)
	}
	return table[k].Name
}

// Parse resolves a block name (case-insensitive) to its kind.
func Parse(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := Air; k < kindCount; k++ {
		if table[k].Name == name {
			return k, nil
		}
	}
	return Air, fmt.Errorf("block: unknown kind %q", name)
}

// UnmarshalYAML decodes a block name from a YAML scalar.
func (k *Kind) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the kind as its name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}
