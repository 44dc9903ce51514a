package serve

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"transcribe-ui/cmd/transcribe-ui/cmd/cmdutil"
	"transcribe-ui/internal/app"
	"transcribe-ui/internal/app/api/backend"
	apperrors "transcribe-ui/internal/app/errors"
)

const shutdownTimeout = 30 * time.Second

// NewCmd creates the serve command
func NewCmd(opts *cmdutil.Options) *cobra.Command {
	var host, port string
	var checkBackend bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcription UI",
		Long: `Serve the transcription UI.

Each browser gets its own view: selected files, the listed transcriptions and the search state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if checkBackend {
				client := backend.NewClient(backend.ClientConfig{BaseURL: cfg.APIURL})
				if err := client.HealthCheck(cmd.Context()); err != nil {
					return apperrors.Wrap(err, "transcription service is not reachable")
				}
			}

			srv, cleanup, err := app.InitializeServer(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, shutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides UI_HOST)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides UI_PORT)")
	cmd.Flags().BoolVar(&checkBackend, "check-backend", false, "fail fast when the transcription service health check fails")

	return cmd
}
