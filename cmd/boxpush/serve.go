package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/platform/tui"
)

var (
	flagServeAddr        string
	flagServeHostKey     string
	flagServePack        string
	flagServeLevel       string
	flagServeIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the terminal game over SSH",
	Long: `Start an SSH server where every connection plays its own game in the terminal.
Solves are recorded in the shared database.

The level is picked with the SSH command, by name or number:
  ssh -t localhost -p 23234 corridor

Examples:
  boxpush serve
  boxpush serve --ssh :2222 --level detour
  boxpush serve --pack ./levels.yaml --host-key ./host_key`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "ssh", "", "SSH listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "Host key file, generated if missing (default from config)")
	serveCmd.Flags().StringVar(&flagServePack, "pack", "", "Level pack YAML (default: built-in pack)")
	serveCmd.Flags().StringVar(&flagServeLevel, "level", "", "Level for sessions that name none (default: first level)")
	serveCmd.Flags().IntVar(&flagServeIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	pack, err := loadPack(flagServePack)
	if err != nil {
		return err
	}
	if flagServeLevel != "" {
		if _, err := pack.Find(flagServeLevel); err != nil {
			return err
		}
	}

	address := a.cfg.Server.Address
	if flagServeAddr != "" {
		address = flagServeAddr
	}
	hostKey := a.cfg.Server.HostKeyPath
	if flagServeHostKey != "" {
		hostKey = flagServeHostKey
	}

	saver, closeStore := a.openSaver()
	defer closeStore()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:      address,
		HostKeyPath:  hostKey,
		IdleTimeout:  time.Duration(flagServeIdleTimeout) * time.Minute,
		Pack:         pack,
		DefaultLevel: flagServeLevel,
		Game:         a.gameOptions(),
		Glyphs:       a.cfg.Terminal.Glyphs,
		Saver:        saver,
		Logger:       a.logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving boxpush on %s\n", server.Addr())
	fmt.Fprintf(out, "Connect with: ssh -t <host> -p <port> [level]\n")
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
