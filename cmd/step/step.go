package step

import (
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/util/command"
)

const (
	walletIDFlag = "wallet-id"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("step",
		newInitUser(),
		newCreateWallet(),
		newSimulateTransfer(),
	)
}
