package test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/sandbox"
)

const APIKey = "test-api-key"

// Now is the fixed time reported by the sandbox clock in tests.
var Now = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

// WithTestSandbox starts a sandbox provider and passes a config pointing at it.
func WithTestSandbox(t *testing.T, closure func(s *sandbox.Server, cfg config.Config)) {
	t.Helper()

	s := sandbox.New(config.Sandbox{APIKey: APIKey}, time2.NewMockClock(Now))
	ts := httptest.NewServer(s.Echo)
	t.Cleanup(ts.Close)

	closure(s, NewTestConfig(ts.URL+sandbox.BasePath))
}

// NewTestConfig returns the default config with the provider at baseURL and
// the workflow defaults pinned regardless of the ENV.
func NewTestConfig(baseURL string) config.Config {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Provider.BaseURL = baseURL
	cfg.Provider.APIKey = APIKey
	cfg.Provider.Timeout = 5 * time.Second
	cfg.Sandbox.APIKey = APIKey
	cfg.Workflow = config.Workflow{
		UserID:             "example-gasless-user-123",
		AccountType:        config.AccountTypeSCA,
		Blockchains:        []string{"ETH-SEPOLIA"},
		UserToken:          config.SimulatedUserToken,
		DestinationAddress: "0x...",
		Amount:             5,
		Currency:           "USD",
		Chain:              "ETH-SEPOLIA",
	}
	cfg.Logger.PrettyPrintConsole = false

	return cfg
}
