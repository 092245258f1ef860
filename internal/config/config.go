package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/kat-co/vala"
	"github.com/rs/zerolog"
	"github/chapool/go-gasless/internal/util"
)

const (
	// PlaceholderAPIKey is the value CIRCLE_API_KEY falls back to when unset.
	// Requests are refused while it is still in place.
	PlaceholderAPIKey = "YOUR_API_KEY_HERE"

	// SimulatedUserToken stands in for the token a client device would obtain
	// after completing the user challenge.
	SimulatedUserToken = "SIMULATED_USER_TOKEN_FROM_CHALLENGE"

	AccountTypeSCA = "SCA"
	AccountTypeEOA = "EOA"
)

// AccountTypes lists the wallet account types the provider accepts.
var AccountTypes = []string{AccountTypeSCA, AccountTypeEOA}

type Provider struct {
	BaseURL string
	APIKey  string `json:"-"`
	Timeout time.Duration
}

// Configured reports whether a real API key was supplied.
func (p Provider) Configured() bool {
	return p.APIKey != "" && p.APIKey != PlaceholderAPIKey
}

type Workflow struct {
	UserID             string
	AccountType        string
	Blockchains        []string
	UserToken          string `json:"-"`
	DestinationAddress string
	Amount             float64
	Currency           string
	Chain              string
}

// Validate checks the workflow parameters that have no sensible zero value.
func (w Workflow) Validate() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(w.UserID, "UserID"),
		vala.StringNotEmpty(w.AccountType, "AccountType"),
		vala.StringNotEmpty(w.Currency, "Currency"),
		vala.StringNotEmpty(w.Chain, "Chain"),
		vala.Not(vala.Equals(len(w.Blockchains), 0, "Blockchains")),
		oneOf(w.AccountType, AccountTypes, "AccountType"),
	).Check()
}

func oneOf(val string, allowed []string, name string) vala.Checker {
	return func() (bool, string) {
		if slices.Contains(allowed, val) {
			return true, ""
		}

		return false, fmt.Sprintf("parameter %s must be one of %v, got %q", name, allowed, val)
	}
}

type LoggerServer struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

type Sandbox struct {
	ListenAddress string
	// APIKey accepted by the sandbox. Falls back to the provider key.
	APIKey string `json:"-"`
}

// Metrics of a CLI invocation are written to File in the Prometheus text
// format once the command finished. Empty disables the export.
type Metrics struct {
	File string
}

type Config struct {
	Provider Provider
	Workflow Workflow
	Logger   LoggerServer
	Sandbox  Sandbox
	Metrics  Metrics
}

// DefaultServiceConfigFromEnv returns the configuration as read from the
// process environment, falling back to the sandbox defaults.
func DefaultServiceConfigFromEnv() Config {
	apiKey := util.GetEnv("CIRCLE_API_KEY", PlaceholderAPIKey)

	return Config{
		Provider: Provider{
			BaseURL: util.GetEnv("CIRCLE_API_URL", "https://api-sandbox.circle.com/v1/w3s"),
			APIKey:  apiKey,
			Timeout: util.GetEnvAsDuration("CIRCLE_API_TIMEOUT", 30*time.Second),
		},
		Workflow: Workflow{
			UserID:             util.GetEnv("GASLESS_USER_ID", "example-gasless-user-123"),
			AccountType:        util.GetEnvEnum("GASLESS_ACCOUNT_TYPE", AccountTypeSCA, AccountTypes),
			Blockchains:        util.GetEnvAsStringArr("GASLESS_BLOCKCHAINS", []string{"ETH-SEPOLIA"}),
			UserToken:          util.GetEnv("GASLESS_USER_TOKEN", SimulatedUserToken),
			DestinationAddress: util.GetEnv("GASLESS_DESTINATION_ADDRESS", "0x..."),
			Amount:             util.GetEnvAsFloat("GASLESS_AMOUNT", 5),
			Currency:           util.GetEnv("GASLESS_CURRENCY", "USD"),
			Chain:              util.GetEnv("GASLESS_CHAIN", "ETH-SEPOLIA"),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("LOGGER_LEVEL", zerolog.InfoLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("LOGGER_PRETTY_PRINT_CONSOLE", util.StdoutIsTerminal()),
		},
		Sandbox: Sandbox{
			ListenAddress: util.GetEnv("SANDBOX_LISTEN_ADDRESS", ":8089"),
			APIKey:        util.GetEnv("SANDBOX_API_KEY", apiKey),
		},
		Metrics: Metrics{
			File: util.GetEnv("GASLESS_METRICS_FILE", ""),
		},
	}
}
