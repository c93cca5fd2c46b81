package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bytesleuth/sleuth/pkg/scanner"
	"github.com/bytesleuth/sleuth/pkg/serve"
)

var serveSignaturesPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming classification server",
	Long: `Run sleuth as a long-lived streaming server that accepts detection
requests via stdin and outputs results via stdout using NDJSON format.

This mode is designed for embedding in upload pipelines. The process loads
signatures once at startup and processes requests until stdin closes or
SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveSignaturesPath, "signatures", "", "Path to custom signature YAML file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	var logger scanner.DebugLogger
	if verbose {
		logger = scanner.NewStderrLogger()
	}

	sigSource := "builtin"
	if serveSignaturesPath != "" {
		sigSource = serveSignaturesPath
	}

	core, err := scanner.NewCore(sigSource, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
