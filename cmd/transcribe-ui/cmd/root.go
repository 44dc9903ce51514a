package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/cmd/transcribe-ui/cmd/export"
	"transcribe-ui/cmd/transcribe-ui/cmd/list"
	"transcribe-ui/cmd/transcribe-ui/cmd/search"
	"transcribe-ui/cmd/transcribe-ui/cmd/serve"
	"transcribe-ui/cmd/transcribe-ui/cmd/upload"
	"transcribe-ui/cmd/transcribe-ui/cmd/version"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &cmdutil.Options{}

	rootCmd := &cobra.Command{
		Use:   "transcribe-ui",
		Short: "A small client for an audio transcription service",
		Long: `A small client for an audio transcription service.
- serve runs the browser UI: pick audio files, upload them, browse and search the stored transcriptions
- list, search, upload and export do the same from the terminal

The service address comes from TRANSCRIPTION_API_URL or --api-url.`,
		SilenceUsage:     true,
		TraverseChildren: true,
	}

	rootCmd.AddCommand(serve.NewCmd(opts))
	rootCmd.AddCommand(list.NewCmd(opts))
	rootCmd.AddCommand(search.NewCmd(opts))
	rootCmd.AddCommand(upload.NewCmd(opts))
	rootCmd.AddCommand(export.NewCmd(opts))
	rootCmd.AddCommand(version.NewCmd())

	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "transcription service base URL (overrides TRANSCRIPTION_API_URL)")

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
