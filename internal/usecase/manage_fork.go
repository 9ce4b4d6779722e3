package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ManageFork exposes the fork runner as a standalone operation for the
// fork command group.
type ManageFork struct {
	log   *slog.Logger
	forks ForkRunner
}

func NewManageFork(forks ForkRunner, log *slog.Logger) *ManageFork {
	return &ManageFork{
		log:   log.With("component", "ManageFork"),
		forks: forks,
	}
}

// Start launches a fork of the given RPC endpoint and returns its status.
func (uc *ManageFork) Start(ctx context.Context, cfg domain.ForkConfig) (domain.ForkStatus, error) {
	if uc.forks.IsRunning() {
		return domain.ForkStatus{}, fmt.Errorf("a fork is already running at %s", uc.forks.LocalRPCURL())
	}
	if err := uc.forks.Start(ctx, cfg.WithDefaults()); err != nil {
		return domain.ForkStatus{}, err
	}
	status := uc.forks.Status()
	uc.log.Info("fork started", "rpc", status.RPCURL, "pid", status.PID)
	return status, nil
}

// Stop terminates a running fork. Calling it with no fork running is a no-op.
func (uc *ManageFork) Stop() error {
	return uc.forks.Stop()
}

// Status reports whether a fork is running and where.
func (uc *ManageFork) Status() domain.ForkStatus {
	return uc.forks.Status()
}
