package step

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/app"
	"github/chapool/go-gasless/internal/util/command"
)

func newSimulateTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate-transfer",
		Short: "Prints the transfer intent a gasless transaction from the wallet would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			walletID, err := cmd.Flags().GetString(walletIDFlag)
			if err != nil {
				return err
			}

			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			return command.WithApp(cmd.Context(), cfg, cmd.OutOrStdout(), func(ctx context.Context, a *app.App) error {
				result, err := a.Workflow.SimulateTransfer(ctx, walletID)
				if err != nil {
					return err
				}

				fmt.Fprintf(a.Out, "Status: %s\nTransaction ID: %s\n", result.Status, result.TransactionID)

				return nil
			})
		},
	}

	command.AddWorkflowFlags(cmd)
	cmd.Flags().String(walletIDFlag, "", "Wallet to send the simulated transfer from")
	_ = cmd.MarkFlagRequired(walletIDFlag)

	return cmd
}
