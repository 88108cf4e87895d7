package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu.
All users share the server's results database.

Host key handling:
  - --host-key, or server.host_key_path from the config
  - the key is generated on first start if the file does not exist

Examples:
  reversi serve                           # Listen on the configured address
  reversi serve --ssh :2323               # Listen on port 2323
  reversi serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	// Sessions of different users must not share a save file.
	settings := appConfig.SessionSettings()
	settings.SavePath = ""
	reversi.Configure(settings)

	cfg := tui.SSHServerConfig{
		Address:     firstNonEmpty(flagSSHAddr, appConfig.Server.SSHAddr),
		HostKeyPath: config.ExpandPath(firstNonEmpty(flagHostKey, appConfig.Server.HostKeyPath)),
		DBPath:      dbPath(),
		IdleTimeout: appConfig.Server.IdleTimeout,
		TickRate:    flagFPS,
		Logger:      logger.WithPrefix("ssh"),
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting reversi SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
