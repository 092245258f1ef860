package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/cmd/env"
	"github/chapool/go-gasless/cmd/run"
	"github/chapool/go-gasless/cmd/sandbox"
	"github/chapool/go-gasless/cmd/step"
	"github/chapool/go-gasless/cmd/wallet"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Walks through the setup of a gasless wallet experience on the Circle
Programmable Wallets API: user initialization, wallet creation and a
simulated sponsored transfer.
Requires configuration through ENV, a .env file or a config file.`, config.ModuleName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.PersistentFlags().String(command.ConfigFileFlag, "", "Optional config file (yaml, json or toml) keyed by lower-cased ENV names")
	rootCmd.PersistentFlags().String(command.EnvFileFlag, ".env", "Optional .env file, variables already in the ENV take precedence")

	// attach the subcommands
	rootCmd.AddCommand(
		env.New(),
		run.New(),
		sandbox.New(),
		step.New(),
		wallet.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
