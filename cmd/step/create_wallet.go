package step

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/gasless"
	"github/chapool/go-gasless/internal/util/command"
)

func newCreateWallet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-wallet",
		Short: "Creates a wallet with the configured user token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return command.WithApp(cmd.Context(), cfg, cmd.OutOrStdout(), func(ctx context.Context, a *app.App) error {
				wallet, err := a.Workflow.CreateWallet(ctx, gasless.UserToken(cfg.Workflow.UserToken))
				if err != nil {
					return err
				}

				b, err := json.MarshalIndent(wallet, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal wallet")
				}

				fmt.Fprintln(a.Out, string(b))

				return nil
			})
		},
	}

	command.AddWorkflowFlags(cmd)

	return cmd
}
