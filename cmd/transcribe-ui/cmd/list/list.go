package list

import (
	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/internal/app/view"
)

// NewCmd creates the list command
func NewCmd(opts *cmdutil.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored transcription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, cleanup, err := opts.CLI()
			if err != nil {
				return err
			}
			defer cleanup()

			v := view.New(cli.Client, cli.Logger)
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			return view.RenderText(cmd.OutOrStdout(), v.Snapshot())
		},
	}
}
