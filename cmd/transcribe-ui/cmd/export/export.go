package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/internal/app/export"
	"transcribe-ui/internal/app/view"
)

// NewCmd creates the export command
func NewCmd(opts *cmdutil.Options) *cobra.Command {
	var outputFilePath string
	var searchTerm string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transcriptions to excel",
		Long: `Export transcriptions to excel

- Exports the full list, or only records whose audio filename matches --search`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, cleanup, err := opts.CLI()
			if err != nil {
				return err
			}
			defer cleanup()

			v := view.New(cli.Client, cli.Logger)
			if cmd.Flags().Changed("search") {
				v.SetSearchTerm(searchTerm)
				err = v.Search(cmd.Context())
			} else {
				err = v.Load(cmd.Context())
			}
			if err != nil {
				return err
			}

			if err := export.ToExcel(v.Snapshot().Transcriptions, outputFilePath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "set output file path")
	cmd.Flags().StringVarP(&searchTerm, "search", "s", "", "only export records whose audio filename matches")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
