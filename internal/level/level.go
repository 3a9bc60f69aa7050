// Package level loads bubble board layouts from YAML. A small set of
// hand-made layouts ships embedded in the binary; levels past the preset
// list fall back to seeded random generation in the game engine.
package level

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultLevelsYAML []byte

// Empty is the palette index for an empty cell.
const Empty = -1

// DefaultCols is the board width the embedded presets are authored for.
const DefaultCols = 8

// Layout is one board preset: rows of color-code strings, top row first.
type Layout struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Set is an ordered collection of layouts, one per level.
type Set struct {
	Levels []Layout `yaml:"levels"`
}

// Parse reads a layout set from YAML and validates the color codes.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	for li, l := range s.Levels {
		for ri, row := range l.Rows {
			for ci, code := range row {
				if colorIndex(byte(code)) == Empty && code != '.' {
					return nil, fmt.Errorf("level %d (%q) row %d col %d: unknown color code %q",
						li+1, l.Name, ri, ci, string(code))
				}
			}
		}
	}
	return &s, nil
}

// Validate checks every row against the staggered board width: even rows
// hold cols cells, odd rows one less. Rows shorter than their width are
// fine (the tail stays empty); rows wider than it hide codes silently, so
// they are rejected.
func (s *Set) Validate(cols int) error {
	for li, l := range s.Levels {
		for ri, row := range l.Rows {
			width := cols
			if ri%2 == 1 {
				width = cols - 1
			}
			if len(row) > width {
				return fmt.Errorf("level %d (%q) row %d: %d codes but the row holds %d cells",
					li+1, l.Name, ri, len(row), width)
			}
		}
	}
	return nil
}

// DefaultSet returns the embedded layout set. The embedded file is validated
// by tests, so a parse or width failure here is a build defect and panics.
func DefaultSet() *Set {
	s, err := Parse(defaultLevelsYAML)
	if err != nil {
		panic(err)
	}
	if err := s.Validate(DefaultCols); err != nil {
		panic(err)
	}
	return s
}

// Layout returns the preset for a 1-based level number. ok is false past the
// end of the preset list.
func (s *Set) Layout(level int) (Layout, bool) {
	if level < 1 || level > len(s.Levels) {
		return Layout{}, false
	}
	return s.Levels[level-1], true
}

// Count returns the number of presets in the set.
func (s *Set) Count() int {
	return len(s.Levels)
}

// CellColor returns the palette index at (row, col), or Empty for empty,
// out-of-layout, or out-of-range cells.
func (l Layout) CellColor(row, col int) int {
	if row < 0 || row >= len(l.Rows) {
		return Empty
	}
	r := l.Rows[row]
	if col < 0 || col >= len(r) {
		return Empty
	}
	return colorIndex(r[col])
}

// colorIndex maps a layout code to its palette index. Order matches the
// game palette: red, yellow, green, blue, purple, orange.
func colorIndex(code byte) int {
	switch code {
	case 'R':
		return 0
	case 'Y':
		return 1
	case 'G':
		return 2
	case 'B':
		return 3
	case 'P':
		return 4
	case 'O':
		return 5
	default:
		return Empty
	}
}
