package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// NewCmd creates the version command
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of transcribe-ui",
		Long:  `All software has versions. This is transcribe-ui's.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
