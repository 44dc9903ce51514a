package search

import (
	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/internal/app/view"
)

// NewCmd creates the search command
func NewCmd(opts *cmdutil.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Print transcriptions whose audio filename matches term",
		Long: `Print transcriptions whose audio filename matches term.

Matching is done by the service. Without a term the service decides what an empty filter returns.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, cleanup, err := opts.CLI()
			if err != nil {
				return err
			}
			defer cleanup()

			v := view.New(cli.Client, cli.Logger)
			if len(args) == 1 {
				v.SetSearchTerm(args[0])
			}
			if err := v.Search(cmd.Context()); err != nil {
				return err
			}
			return view.RenderText(cmd.OutOrStdout(), v.Snapshot())
		},
	}
}
