package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration without assets or glyphs.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			TickRate:      60,
			MaxCatchUp:    5,
			TileWidth:     48,
			TileHeight:    48,
			AnimationStep: 0.25,
		},
		Window: WindowConfig{
			Title: "boxpush",
			Scale: 1,
		},
		Assets: AssetsConfig{
			Dir: "resources",
		},
		Storage: StorageConfig{
			Path: "boxpush.db",
		},
		Server: ServerConfig{
			Address:     "localhost:23234",
			HostKeyPath: ".ssh/boxpush_ed25519",
		},
	}
}
