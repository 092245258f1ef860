package app

import (
	"io"

	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/gasless"
	"github/chapool/go-gasless/internal/metrics"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewMetrics() (*metrics.Service, error) {
	return metrics.New()
}

func NewClient(cfg config.Config, m *metrics.Service) *circle.Client {
	return circle.NewClient(cfg.Provider, m)
}

//nolint:ireturn // wire binds the capability interface
func NewChallengeCompleter(cfg config.Config) gasless.ChallengeCompleter {
	return gasless.StaticChallengeCompleter{Token: gasless.UserToken(cfg.Workflow.UserToken)}
}

//nolint:ireturn // wire binds the capability interface
func NewTransferSubmitter(out io.Writer) gasless.TransferSubmitter {
	return gasless.SimulatedTransferSubmitter{Out: out}
}

func NewOrchestrator(
	cfg config.Config,
	provider gasless.Provider,
	challenges gasless.ChallengeCompleter,
	transfers gasless.TransferSubmitter,
	m *metrics.Service,
	out io.Writer,
) *gasless.Orchestrator {
	return gasless.NewOrchestrator(cfg.Workflow, provider, challenges, transfers, m, out)
}
