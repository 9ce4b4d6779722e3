package app

import (
	"github.com/gfournieriExec/multisig-automate-proposer/internal/config"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// App is the application container holding all use cases.
type App struct {
	Config *config.RuntimeConfig

	ExecuteFromScript    *usecase.ExecuteFromScript
	ProposeTransactions  *usecase.ProposeTransactions
	ListSafeTransactions *usecase.ListSafeTransactions
	ManageFork           *usecase.ManageFork
}

// NewApp creates the application instance with all use cases wired.
func NewApp(
	cfg *config.RuntimeConfig,
	executeFromScript *usecase.ExecuteFromScript,
	proposeTransactions *usecase.ProposeTransactions,
	listSafeTransactions *usecase.ListSafeTransactions,
	manageFork *usecase.ManageFork,
) *App {
	return &App{
		Config:               cfg,
		ExecuteFromScript:    executeFromScript,
		ProposeTransactions:  proposeTransactions,
		ListSafeTransactions: listSafeTransactions,
		ManageFork:           manageFork,
	}
}
