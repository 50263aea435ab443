package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/growthcast/internal/config"
	"github.com/theirongolddev/growthcast/internal/server"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr     string
	flagServeLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve forecasts over an HTTP JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config or "+config.DefaultAddr+")")
	serveCmd.Flags().StringVar(&flagServeLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := config.ServerAddr(appConfig)
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	level := appConfig.Server.LogLevel
	if flagServeLogLevel != "" {
		level = flagServeLogLevel
	}

	logger, err := server.NewLogger(level, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:     addr,
		Defaults: inputFromFlags(cmd),
		Logger:   logger,
	})
	return srv.Run(ctx)
}
