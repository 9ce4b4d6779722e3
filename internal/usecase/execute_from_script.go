package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/anvil"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ErrAborted is returned when the operator declines the confirmation prompt.
var ErrAborted = errors.New("aborted by operator")

// ExecuteParams configures one run of the script-to-proposal pipeline.
type ExecuteParams struct {
	ScriptPath   string
	ContractName string
	RPCURL       string
	// ChainID is the configured chain id, used to locate the broadcast
	// artifact when the script run fails before reporting one.
	ChainID   uint64
	ExtraArgs []string
	Env       map[string]string
	SkipFork  bool
	// SkipOwnerCheck bypasses the proposer-is-owner verification, for
	// Safes whose owner set is not readable from the configured RPC.
	SkipOwnerCheck bool
	DryRun         bool
	// AutoConfirm skips the interactive prompt before proposing.
	AutoConfirm bool
}

// ScriptPhase is the tagged outcome of the script-execution phase. A
// failed script does not abort the pipeline: the artifact phase falls
// back to the broadcast file of a previous run on the configured chain.
type ScriptPhase struct {
	ChainID uint64
	Err     error
}

// OK reports whether the script ran to completion.
func (p ScriptPhase) OK() bool { return p.Err == nil }

// ExecuteResult is the pipeline outcome returned to the CLI for rendering.
type ExecuteResult struct {
	Script ScriptPhase
	Inputs []domain.TransactionInput
	Hashes []common.Hash
	DryRun bool
}

// ExecuteFromScript runs a forge script (against a fork when the target
// RPC is remote), reads the resulting broadcast artifact, translates its
// calls, and proposes them to the Safe in order.
type ExecuteFromScript struct {
	log        *slog.Logger
	forks      ForkRunner
	scripts    ScriptRunner
	broadcasts BroadcastReader
	engine     *ProposeTransactions
	confirmer  Confirmer
	progress   ProgressSink
}

func NewExecuteFromScript(
	forks ForkRunner,
	scripts ScriptRunner,
	broadcasts BroadcastReader,
	engine *ProposeTransactions,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *ExecuteFromScript {
	return &ExecuteFromScript{
		log:        log.With("component", "ExecuteFromScript"),
		forks:      forks,
		scripts:    scripts,
		broadcasts: broadcasts,
		engine:     engine,
		confirmer:  confirmer,
		progress:   progress,
	}
}

// Run drives the two pipeline phases. The fork, when started, is torn
// down on every exit path.
func (uc *ExecuteFromScript) Run(ctx context.Context, params ExecuteParams) (*ExecuteResult, error) {
	rpcURL := params.RPCURL

	if anvil.ShouldStartFork(params.RPCURL, params.SkipFork) {
		uc.progress.Start("Starting local fork")
		if err := uc.forks.Start(ctx, domain.ForkConfig{ForkURL: params.RPCURL}.WithDefaults()); err != nil {
			uc.progress.Fail("Fork startup failed")
			return nil, err
		}
		defer func() {
			if err := uc.forks.Stop(); err != nil {
				uc.log.Warn("failed to stop fork", "error", err)
			}
		}()
		rpcURL = uc.forks.LocalRPCURL()
		uc.progress.Done("Fork running at " + rpcURL)
	}

	script := uc.runScript(ctx, params, rpcURL)

	inputs, err := uc.loadTransactions(params, script)
	if err != nil {
		return nil, err
	}

	result := &ExecuteResult{Script: script, Inputs: inputs, DryRun: params.DryRun}
	if params.DryRun {
		uc.log.Info("dry run, skipping signing and proposal", "transactions", len(inputs))
		return result, nil
	}

	if !params.SkipOwnerCheck {
		if err := uc.engine.VerifyProposerIsOwner(ctx); err != nil {
			return nil, err
		}
	}

	if !params.AutoConfirm {
		ok, err := uc.confirmer.Confirm(fmt.Sprintf("Propose %d transaction(s) to the Safe?", len(inputs)))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	uc.progress.Start(fmt.Sprintf("Proposing %d transaction(s)", len(inputs)))
	hashes, err := uc.engine.ProposeSequential(ctx, inputs)
	if err != nil {
		uc.progress.Fail("Proposal failed")
		return nil, err
	}
	uc.progress.Done(fmt.Sprintf("Proposed %d transaction(s)", len(hashes)))

	result.Hashes = hashes
	return result, nil
}

// runScript is phase one. Failures are captured in the tagged result
// rather than returned, so phase two can fall back to a prior artifact.
func (uc *ExecuteFromScript) runScript(ctx context.Context, params ExecuteParams, rpcURL string) ScriptPhase {
	uc.progress.Start("Running forge script " + filepath.Base(params.ScriptPath))
	chainID, err := uc.scripts.Run(ctx, ScriptRunConfig{
		ScriptPath:   params.ScriptPath,
		ContractName: params.ContractName,
		RPCURL:       rpcURL,
		ExtraArgs:    params.ExtraArgs,
		Env:          params.Env,
	})
	if err != nil {
		uc.progress.Fail("Script execution failed")
		uc.log.Warn("script failed, will fall back to the last broadcast artifact",
			"script", params.ScriptPath, "error", err)
		return ScriptPhase{ChainID: params.ChainID, Err: err}
	}
	uc.progress.Done("Script completed")
	return ScriptPhase{ChainID: chainID}
}

// loadTransactions is phase two: read the broadcast artifact for the
// chain the script phase settled on and normalize its call entries.
func (uc *ExecuteFromScript) loadTransactions(params ExecuteParams, script ScriptPhase) ([]domain.TransactionInput, error) {
	scriptName := filepath.Base(params.ScriptPath)
	txs, err := uc.broadcasts.ReadBroadcast(scriptName, script.ChainID)
	if err != nil {
		if !script.OK() {
			return nil, fmt.Errorf("script failed (%v) and no usable broadcast artifact: %w", script.Err, err)
		}
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("broadcast artifact for %s on chain %d contains no call transactions", scriptName, script.ChainID)
	}

	inputs := make([]domain.TransactionInput, 0, len(txs))
	for i, tx := range txs {
		in := domain.NormalizeBroadcastTx(tx, uc.log)
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("broadcast transaction %d: %w", i, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
