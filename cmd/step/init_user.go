package step

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/util/command"
)

func newInitUser() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-user",
		Short: "Initializes the configured user and prints the challenge id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return command.WithApp(cmd.Context(), cfg, cmd.OutOrStdout(), func(ctx context.Context, a *app.App) error {
				challenge, err := a.Workflow.InitializeUser(ctx, cfg.Workflow.UserID)
				if err != nil {
					return err
				}

				fmt.Fprintf(a.Out, "Challenge ID: %s\n", challenge.ID)

				return nil
			})
		},
	}

	command.AddWorkflowFlags(cmd)

	return cmd
}
