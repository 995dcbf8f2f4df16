// Command brandgen runs brand asset generation from a guidelines file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	guidelinesPath string
	outputFlag     string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brandgen",
		Short: "Generate brand-consistent asset packages",
		Long: `brandgen expands brand guidelines into logos, social templates, slides,
email templates and marketing materials. Every asset is scored against the
guidelines and regenerated with corrective feedback until it passes or runs
out of attempts.

Without GEMINI_API_KEY the assets are rendered locally from the palette.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&guidelinesPath, "file", "f", "", "Brand guidelines file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, json, yaml")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newValidateCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
