// Package config loads the YAML settings shared by every reversi command:
// computer pacing, default player types, file locations and server addresses.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// Config is the root of reversi.yaml.
type Config struct {
	Computer ComputerConfig `yaml:"computer"`
	Players  PlayersConfig  `yaml:"players"`
	Storage  StorageConfig  `yaml:"storage"`
	Display  DisplayConfig  `yaml:"display"`
	Server   ServerConfig   `yaml:"server"`
}

// ComputerConfig controls computer-controlled sides.
type ComputerConfig struct {
	Delay    time.Duration `yaml:"delay"`
	Strategy string        `yaml:"strategy"`
}

// PlayersConfig holds the default player type of each side.
type PlayersConfig struct {
	Dark  string `yaml:"dark"`
	Light string `yaml:"light"`
}

// StorageConfig locates the results database and the quick-save file.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	SavePath string `yaml:"save_path"`
}

// DisplayConfig tunes the terminal board.
type DisplayConfig struct {
	FlipHighlight time.Duration `yaml:"flip_highlight"`
}

// ServerConfig holds listen addresses for the SSH and HTTP servers.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	HTTPAddr    string        `yaml:"http_addr"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate rejects settings the engine cannot honour.
func (c Config) Validate() error {
	if c.Computer.Delay < 0 {
		return fmt.Errorf("config: computer.delay must not be negative, got %s", c.Computer.Delay)
	}
	if _, err := reversi.SelectorByName(c.Computer.Strategy, 0); err != nil {
		return fmt.Errorf("config: computer.strategy: %w", err)
	}
	if _, err := reversi.ParsePlayerType(c.Players.Dark); err != nil {
		return fmt.Errorf("config: players.dark: %w", err)
	}
	if _, err := reversi.ParsePlayerType(c.Players.Light); err != nil {
		return fmt.Errorf("config: players.light: %w", err)
	}
	if c.Display.FlipHighlight < 0 {
		return fmt.Errorf("config: display.flip_highlight must not be negative, got %s", c.Display.FlipHighlight)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout)
	}
	return nil
}

// PlayerTypes returns the configured default player types.
// Call Validate first; unparseable values fall back to manual.
func (c Config) PlayerTypes() (dark, light reversi.PlayerType) {
	dark, _ = reversi.ParsePlayerType(c.Players.Dark)
	light, _ = reversi.ParsePlayerType(c.Players.Light)
	return dark, light
}

// SessionSettings converts the config into settings for terminal sessions.
func (c Config) SessionSettings() reversi.Settings {
	return reversi.Settings{
		ComputerDelay: c.Computer.Delay,
		FlipHighlight: c.Display.FlipHighlight,
		Strategy:      c.Computer.Strategy,
		SavePath:      ExpandPath(c.Storage.SavePath),
	}
}
