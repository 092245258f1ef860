//go:build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/gasless"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// appSet groups the default set of providers that are required for initing an app
var appSet = wire.NewSet(
	newAppWithComponents,
	NewMetrics,
	providerSet,
	NewChallengeCompleter,
	NewTransferSubmitter,
	NewOrchestrator,
)

var providerSet = wire.NewSet(
	NewClient,
	wire.Bind(new(gasless.Provider), new(*circle.Client)),
)

// InitNewApp returns a new App instance printing workflow progress to out.
func InitNewApp(
	_ config.Config,
	_ io.Writer,
) (*App, error) {
	wire.Build(appSet)
	return new(App), nil
}
