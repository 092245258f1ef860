package app

import (
	"io"

	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/gasless"
	"github/chapool/go-gasless/internal/metrics"
)

// App is a central struct keeping all the dependencies of a CLI invocation.
// It is initialized with wire, which handles making the new instances of the
// components in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type App struct {
	Config   config.Config
	Metrics  *metrics.Service
	Client   *circle.Client
	Workflow *gasless.Orchestrator
	Out      io.Writer
}

func newAppWithComponents(
	cfg config.Config,
	m *metrics.Service,
	client *circle.Client,
	workflow *gasless.Orchestrator,
	out io.Writer,
) *App {
	return &App{
		Config:   cfg,
		Metrics:  m,
		Client:   client,
		Workflow: workflow,
		Out:      out,
	}
}
