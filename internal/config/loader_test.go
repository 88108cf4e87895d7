package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home, wd = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "computer:\n  delay: 500ms\n  strategy: greedy\nplayers:\n  light: computer\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Computer.Delay != 500*time.Millisecond {
		t.Errorf("Computer.Delay = %v, want 500ms", cfg.Computer.Delay)
	}
	if cfg.Computer.Strategy != "greedy" {
		t.Errorf("Computer.Strategy = %q, want greedy", cfg.Computer.Strategy)
	}
	dark, light := cfg.PlayerTypes()
	if dark != reversi.Manual || light != reversi.Computer {
		t.Errorf("PlayerTypes() = %v,%v, want manual,computer", dark, light)
	}
	// Unset keys keep their defaults.
	if cfg.Display.FlipHighlight != 400*time.Millisecond {
		t.Errorf("Display.FlipHighlight = %v, want 400ms", cfg.Display.FlipHighlight)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(wd, "configs", fileName), "computer:\n  strategy: first\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Computer.Strategy != "first" {
		t.Errorf("local config: Strategy = %q, want first", cfg.Computer.Strategy)
	}

	writeFile(t, filepath.Join(home, ".reversi", "configs", fileName), "computer:\n  strategy: greedy\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Computer.Strategy != "greedy" {
		t.Errorf("user config should win: Strategy = %q, want greedy", cfg.Computer.Strategy)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"invalid yaml", "computer: [", "failed to parse"},
		{"bad duration", "computer:\n  delay: soon\n", "failed to parse"},
		{"negative delay", "computer:\n  delay: -1s\n", "computer.delay"},
		{"unknown strategy", "computer:\n  strategy: minimax\n", "computer.strategy"},
		{"unknown player", "players:\n  dark: robot\n", "players.dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("error = %q, want it to mention %q", err, tt.errText)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	}
}

func TestEmbeddedMatchesDefaultConfig(t *testing.T) {
	cfg, err := parse(defaultReversiYAML)
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded yaml = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.reversi/reversi.db", "/home/tester/.reversi/reversi.db"},
		{"~", "/home/tester"},
		{"/tmp/game.txt", "/tmp/game.txt"},
		{"relative/game.txt", "relative/game.txt"},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionSettings(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	s := DefaultConfig().SessionSettings()

	if s.ComputerDelay != 2*time.Second || s.FlipHighlight != 400*time.Millisecond {
		t.Errorf("durations = %v,%v, want 2s,400ms", s.ComputerDelay, s.FlipHighlight)
	}
	if s.SavePath != "/home/tester/.reversi/game.txt" {
		t.Errorf("SavePath = %q, want expanded home path", s.SavePath)
	}
}
