//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/config"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/logging"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// InitApp creates a fully wired App instance.
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,
		AdapterSet,
		UseCaseSet,
		NewApp,
	)
	return nil, nil
}
