package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/skillhub/internal/server"
	"github.com/khanglvm/skillhub/internal/storage"
)

// NewServeCmd creates the 'serve' command: the dashboard HTTP server.
func NewServeCmd() *cobra.Command {
	var (
		rootDir string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the review dashboard server",
		Long: `Serve the review dashboard and its JSON API.

The dashboard binds to localhost by default and is meant for a single
operator; there is no authentication. Stop with Ctrl-C.`,
		Example: `  skillhub serve
  skillhub serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootDir, host, port)
		},
	}

	addRootFlag(cmd, &rootDir)
	cmd.Flags().StringVar(&host, "host", "", "Bind address (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port (default from config)")

	return cmd
}

func runServe(rootDir, host string, port int) error {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	if err := cfg.EnsureLayout(); err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	actions := storage.Open(cfg.ActionDBPath())
	defer actions.Close()

	srv := server.New(cfg, newStore(cfg), newCatalog(cfg), actions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
