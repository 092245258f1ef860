package run

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/util/command"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs the whole gasless setup workflow",
		Long: `Initializes the user, completes the challenge with the configured user token,
creates a smart contract account wallet and simulates a sponsored transfer.
Exits with a non-zero code if any step fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return command.WithApp(cmd.Context(), cfg, cmd.OutOrStdout(), func(ctx context.Context, a *app.App) error {
				_, err := a.Workflow.Run(ctx)
				return err
			})
		},
	}

	command.AddWorkflowFlags(cmd)

	return cmd
}
