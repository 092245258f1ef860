package command

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-gasless/internal/config"
)

const (
	ConfigFileFlag = "config"
	EnvFileFlag    = "env-file"
)

// flagKeys maps CLI flags to the lower-cased ENV names used as config keys.
var flagKeys = map[string]string{
	"api-url":      "circle_api_url",
	"timeout":      "circle_api_timeout",
	"user-id":      "gasless_user_id",
	"account":      "gasless_account_type",
	"chains":       "gasless_blockchains",
	"user-token":   "gasless_user_token",
	"destination":  "gasless_destination_address",
	"amount":       "gasless_amount",
	"currency":     "gasless_currency",
	"chain":        "gasless_chain",
	"listen":       "sandbox_listen_address",
	"log-level":    "logger_level",
	"metrics-file": "gasless_metrics_file",
}

// LoadConfig resolves the configuration for cmd: .env file, then ENV, config
// file and finally any flag of cmd listed in flagKeys that was set.
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, err := cmd.Flags().GetString(EnvFileFlag)
	if err != nil {
		envFile = ".env"
	}

	if envFile != "" {
		if err := config.DotEnvTryLoad(envFile, setEnvIfUnset); err != nil {
			return config.Config{}, err
		}
	}

	configFile, err := cmd.Flags().GetString(ConfigFileFlag)
	if err != nil {
		configFile = ""
	}

	v, err := config.NewViper(configFile)
	if err != nil {
		return config.Config{}, err
	}

	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return config.Config{}, errors.Wrapf(err, "failed to bind flag %s", flag)
		}
	}

	return config.FromViper(v), nil
}

// setEnvIfUnset keeps variables exported by the shell ahead of the .env file.
func setEnvIfUnset(key string, value string) error {
	if _, ok := os.LookupEnv(key); ok {
		return nil
	}

	return os.Setenv(key, value)
}
