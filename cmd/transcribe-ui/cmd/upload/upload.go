package upload

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/internal/app/api/backend"
	"transcribe-ui/internal/app/progress"
	"transcribe-ui/internal/app/view"
)

// progressBackend sends uploads through a progress bar and everything else straight to the client
type progressBackend struct {
	*backend.Client
	manager *progress.Manager
}

func (b progressBackend) Upload(ctx context.Context, files []backend.File) error {
	return b.manager.Upload(ctx, b.Client, files, "Uploading")
}

// NewCmd creates the upload command
func NewCmd(opts *cmdutil.Options) *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload audio files for transcription and print the refreshed list",
		Long: `Upload audio files for transcription and print the refreshed list.

All files go to the service in a single request. On success the full list is fetched again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]backend.File, 0, len(args))
			for _, path := range args {
				f, err := backend.FileFromPath(path)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			cli, cleanup, err := opts.CLI()
			if err != nil {
				return err
			}
			defer cleanup()

			manager := progress.NewManager(progress.Config{
				Enabled: progress.ShouldShowProgress(showProgress),
				Writer:  cmd.ErrOrStderr(),
			})

			v := view.New(progressBackend{Client: cli.Client, manager: manager}, cli.Logger)
			v.SelectFiles(files)
			err = v.Upload(cmd.Context())
			manager.Wait()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d file(s)\n", len(files))
			return view.RenderText(cmd.OutOrStdout(), v.Snapshot())
		},
	}

	cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "show a progress bar even when stderr is not a terminal")
	return cmd
}
