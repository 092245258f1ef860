package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("wallet",
		newGet(),
	)
}

func newGet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <wallet-id>",
		Short: "Fetches a wallet from the provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return command.WithApp(cmd.Context(), cfg, cmd.OutOrStdout(), func(ctx context.Context, a *app.App) error {
				wallet, err := a.Client.GetWallet(ctx, args[0])
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

	command.AddProviderFlags(cmd)

	return cmd
}
