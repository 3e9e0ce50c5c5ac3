// Package cli implements the i18n-extract command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "i18n-extract",
		Short: "Extract translatable text from Vue, JavaScript, TypeScript and HTML sources",
		Long: `i18n-extract scans component sources for human-readable text, turns each
occurrence into a parameterized message with a stable key, and writes an
extraction manifest plus per-locale skeleton files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(extractCmd())
	root.AddCommand(versionCmd())
	return root
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer pipeline.Close()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
