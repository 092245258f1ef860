package command

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/config"
)

// NewSubcommandGroup returns a command that only groups subcommands and
// prints its help when invoked directly.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: "Subcommands for " + name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// ConfigureLogger applies the logger config to the global zerolog logger.
func ConfigureLogger(cfg config.LoggerServer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.Level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = "15:04:05"
		}))
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// WithApp wires up an App for cfg and passes it to f. Workflow progress is
// printed to out. The metrics are exported to cfg.Metrics.File afterwards,
// also when f failed.
func WithApp(ctx context.Context, cfg config.Config, out io.Writer, f func(ctx context.Context, a *app.App) error) error {
	ConfigureLogger(cfg.Logger)

	a, err := app.InitNewApp(cfg, out)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize app")
		return errors.Wrap(err, "failed to initialize app")
	}

	ctx = log.Logger.WithContext(ctx)

	err = f(ctx, a)

	if cfg.Metrics.File != "" {
		if writeErr := a.Metrics.WriteToTextfile(cfg.Metrics.File); writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to export metrics")
			if err == nil {
				err = writeErr
			}
		} else {
			log.Debug().Str("file", cfg.Metrics.File).Msg("Metrics exported")
		}
	}

	return err
}
