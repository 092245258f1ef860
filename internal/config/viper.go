package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github/chapool/go-gasless/internal/util"
)

// NewViper returns a viper instance that reads the optional config file at
// path and resolves every key against the ENV first. Keys use the ENV names,
// lower-cased (e.g. circle_api_key).
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return v, nil
}

// FromViper layers the values set in v (config file, ENV or bound flags) over
// the ENV defaults. Precedence: flag > ENV > config file > default. Values
// are parsed with the same rules as the ENV helpers in util.
func FromViper(v *viper.Viper) Config {
	cfg := DefaultServiceConfigFromEnv()
	if v == nil {
		return cfg
	}

	str := func(key string, dst *string) {
		if v.IsSet(key) && v.GetString(key) != "" {
			*dst = v.GetString(key)
		}
	}

	str("circle_api_url", &cfg.Provider.BaseURL)
	str("circle_api_key", &cfg.Provider.APIKey)
	if v.IsSet("circle_api_timeout") {
		cfg.Provider.Timeout = util.ParseDuration("circle_api_timeout", v.GetString("circle_api_timeout"), cfg.Provider.Timeout)
	}

	str("gasless_user_id", &cfg.Workflow.UserID)
	if v.IsSet("gasless_account_type") {
		cfg.Workflow.AccountType = util.ParseEnum("gasless_account_type", v.GetString("gasless_account_type"), cfg.Workflow.AccountType, AccountTypes)
	}
	if v.IsSet("gasless_blockchains") {
		if chains := util.SplitAndTrim(v.GetString("gasless_blockchains"), ","); len(chains) > 0 {
			cfg.Workflow.Blockchains = chains
		}
	}
	str("gasless_user_token", &cfg.Workflow.UserToken)
	str("gasless_destination_address", &cfg.Workflow.DestinationAddress)
	if v.IsSet("gasless_amount") {
		cfg.Workflow.Amount = util.ParseFloat(v.GetString("gasless_amount"), cfg.Workflow.Amount)
	}
	str("gasless_currency", &cfg.Workflow.Currency)
	str("gasless_chain", &cfg.Workflow.Chain)

	if v.IsSet("logger_level") {
		cfg.Logger.Level = util.LogLevelFromString(v.GetString("logger_level"))
	}
	if v.IsSet("logger_pretty_print_console") {
		cfg.Logger.PrettyPrintConsole = util.ParseBool(v.GetString("logger_pretty_print_console"), cfg.Logger.PrettyPrintConsole)
	}

	str("gasless_metrics_file", &cfg.Metrics.File)

	str("sandbox_listen_address", &cfg.Sandbox.ListenAddress)
	if v.IsSet("sandbox_api_key") {
		str("sandbox_api_key", &cfg.Sandbox.APIKey)
	} else {
		cfg.Sandbox.APIKey = cfg.Provider.APIKey
	}

	return cfg
}
