package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultPack []byte

// ErrLevelNotFound is returned by Pack.Find for an unknown name or index.
var ErrLevelNotFound = errors.New("level not found")

// Level is a named map in a pack.
type Level struct {
	Name string `yaml:"name"`
	Map  string `yaml:"map"`
}

// Pack is an ordered list of levels.
type Pack struct {
	Levels []Level `yaml:"levels"`
}

// DefaultPack returns the embedded level pack.
func DefaultPack() (*Pack, error) {
	return ParsePack(defaultPack)
}

// LoadPack reads a YAML level pack from path.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read pack: %w", err)
	}
	return ParsePack(data)
}

// ParsePack decodes a YAML level pack and checks that every map parses.
func ParsePack(data []byte) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("level: decode pack: %w", err)
	}

	seen := make(map[string]bool, len(pack.Levels))
	for i, lvl := range pack.Levels {
		if lvl.Name == "" {
			return nil, fmt.Errorf("level: pack entry %d has no name", i+1)
		}
		if seen[lvl.Name] {
			return nil, fmt.Errorf("level: duplicate level name %q", lvl.Name)
		}
		seen[lvl.Name] = true

		if _, err := Parse(lvl.Map); err != nil {
			return nil, fmt.Errorf("level %q: %w", lvl.Name, err)
		}
	}
	return &pack, nil
}

// Find looks a level up by name, or by 1-based position when ref is a number.
func (p *Pack) Find(ref string) (*Level, error) {
	ref = strings.TrimSpace(ref)
	for i := range p.Levels {
		if p.Levels[i].Name == ref {
			return &p.Levels[i], nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(p.Levels) {
		return &p.Levels[n-1], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, ref)
}

// Parsed returns the level's parsed map.
func (l *Level) Parsed() (*Map, error) {
	return Parse(l.Map)
}
