package sandbox

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/sandbox"
	"github/chapool/go-gasless/internal/util/command"
)

const shutdownTimeout = 10 * time.Second

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Starts a local in-memory stand-in for the wallet provider API",
		Long: `Starts a local in-memory stand-in for the wallet provider API.
Point CIRCLE_API_URL at http://<listen>` + sandbox.BasePath + ` to run the workflow against it.
Requests must carry the SANDBOX_API_KEY (defaults to CIRCLE_API_KEY) as bearer token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return runSandbox(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("listen", "", "Listen address of the sandbox (SANDBOX_LISTEN_ADDRESS)")
	cmd.Flags().String("log-level", "", "Log level (LOGGER_LEVEL)")

	return cmd
}

func runSandbox(ctx context.Context, cfg config.Config) error {
	command.ConfigureLogger(cfg.Logger)

	if cfg.Sandbox.APIKey == "" || cfg.Sandbox.APIKey == config.PlaceholderAPIKey {
		log.Warn().Msg("Sandbox API key is the placeholder, clients must send it as bearer token")
	}

	s := sandbox.New(cfg.Sandbox, time2.DefaultClock)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- s.Start()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down sandbox")
	}

	return nil
}
