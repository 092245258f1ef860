package env

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/util"
	"github/chapool/go-gasless/internal/util/command"
)

type printedConfig struct {
	config.Config
	APIKey string `json:"APIKey"`
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Prints the resolved configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(printedConfig{
				Config: cfg,
				APIKey: util.MaskSecret(cfg.Provider.APIKey),
			}, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal config")
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}

	command.AddWorkflowFlags(cmd)

	return cmd
}
