package command

import (
	"github.com/spf13/cobra"
)

// AddProviderFlags registers the flags overriding the provider connection.
func AddProviderFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-url", "", "Base URL of the wallet provider API (CIRCLE_API_URL)")
	cmd.Flags().Duration("timeout", 0, "Timeout of a single provider request (CIRCLE_API_TIMEOUT)")
	cmd.Flags().String("log-level", "", "Log level (LOGGER_LEVEL)")
	cmd.Flags().String("metrics-file", "", "Write the provider and workflow metrics to this file after the command (GASLESS_METRICS_FILE)")
}

// AddWorkflowFlags registers the flags overriding the workflow parameters.
func AddWorkflowFlags(cmd *cobra.Command) {
	AddProviderFlags(cmd)

	cmd.Flags().String("user-id", "", "Application user to initialize (GASLESS_USER_ID)")
	cmd.Flags().String("account", "", "Wallet account type, SCA or EOA (GASLESS_ACCOUNT_TYPE)")
	cmd.Flags().String("chains", "", "Comma separated blockchains for the wallet (GASLESS_BLOCKCHAINS)")
	cmd.Flags().String("user-token", "", "User token obtained from the challenge (GASLESS_USER_TOKEN)")
	cmd.Flags().String("destination", "", "Destination address of the simulated transfer (GASLESS_DESTINATION_ADDRESS)")
	cmd.Flags().Float64("amount", 0, "Amount of the simulated transfer (GASLESS_AMOUNT)")
	cmd.Flags().String("currency", "", "Currency of the simulated transfer (GASLESS_CURRENCY)")
	cmd.Flags().String("chain", "", "Chain of the simulated transfer (GASLESS_CHAIN)")
}
