package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/reversi.yaml
var defaultReversiYAML []byte

// DefaultConfig returns the built-in configuration. It matches
// defaults/reversi.yaml and is used when that file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Computer: ComputerConfig{
			Delay:    2 * time.Second,
			Strategy: "random",
		},
		Players: PlayersConfig{
			Dark:  "manual",
			Light: "manual",
		},
		Storage: StorageConfig{
			DBPath:   "~/.reversi/reversi.db",
			SavePath: "~/.reversi/game.txt",
		},
		Display: DisplayConfig{
			FlipHighlight: 400 * time.Millisecond,
		},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			HostKeyPath: ".ssh/reversi_ed25519",
			HTTPAddr:    ":8080",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
