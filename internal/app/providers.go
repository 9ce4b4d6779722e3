package app

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/wire"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/anvil"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/forge"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/forge/broadcast"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/interactive"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/safe"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/config"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// AdapterSet wires every adapter behind its usecase port.
var AdapterSet = wire.NewSet(
	anvil.NewRunner,
	wire.Bind(new(usecase.ForkRunner), new(*anvil.Runner)),

	ProvideForgeRunner,
	wire.Bind(new(usecase.ScriptRunner), new(*ForgeScriptRunner)),
	ProvideBroadcastReader,
	wire.Bind(new(usecase.BroadcastReader), new(*broadcast.Reader)),

	ProvideChainID,
	ProvideServiceClient,
	safe.NewQueryService,
	wire.Bind(new(usecase.SafeQueryService), new(*safe.QueryService)),
	ProvideContractReader,
	wire.Bind(new(usecase.SafeChainReader), new(*safe.ContractReader)),
	ProvideProposerClient,
	wire.Bind(new(usecase.SafeProposer), new(*safe.ProposerClient)),

	interactive.NewConfirmer,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Confirmer)),
)

// UseCaseSet wires the use cases themselves.
var UseCaseSet = wire.NewSet(
	ProvideProposeTransactions,
	usecase.NewExecuteFromScript,
	ProvideListSafeTransactions,
	usecase.NewManageFork,
)

// ProvideChainID falls back to the default chain when none is configured,
// so query commands work against sepolia out of the box.
func ProvideChainID(cfg *config.RuntimeConfig) uint64 {
	if cfg.ChainID == 0 {
		return forge.DefaultChainID
	}
	return cfg.ChainID
}

// ForgeScriptRunner bridges the forge adapter to the usecase port shape.
type ForgeScriptRunner struct {
	runner *forge.Runner
}

func (s *ForgeScriptRunner) Run(ctx context.Context, cfg usecase.ScriptRunConfig) (uint64, error) {
	return s.runner.Run(ctx, forge.RunConfig{
		ScriptPath:   cfg.ScriptPath,
		ContractName: cfg.ContractName,
		RPCURL:       cfg.RPCURL,
		ExtraArgs:    cfg.ExtraArgs,
		Env:          cfg.Env,
	})
}

func ProvideForgeRunner(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeScriptRunner {
	return &ForgeScriptRunner{runner: forge.NewRunner(cfg.ProjectRoot, log)}
}

func ProvideBroadcastReader(cfg *config.RuntimeConfig, log *slog.Logger) *broadcast.Reader {
	return broadcast.NewReader(cfg.ProjectRoot, cfg.FoundryConfig.BroadcastDir, log)
}

func ProvideServiceClient(cfg *config.RuntimeConfig, chainID uint64, log *slog.Logger) (*safe.ServiceClient, error) {
	return safe.NewServiceClient(chainID, cfg.ServiceURL, cfg.APIKey, log)
}

// ProvideContractReader dials the configured RPC. With no RPC configured
// it returns a nil reader: the query commands never touch the chain, and
// the proposal commands validate rpc_url before the reader is used.
func ProvideContractReader(cfg *config.RuntimeConfig, log *slog.Logger) (*safe.ContractReader, error) {
	if cfg.RPCURL == "" {
		return nil, nil
	}
	return safe.NewContractReader(cfg.RPCURL, cfg.SafeAddress, log)
}

// ProvideProposerClient builds the signing client. With no key configured
// it returns a client with a zero identity; the proposal commands
// validate proposer_private_key before anything is signed.
func ProvideProposerClient(
	cfg *config.RuntimeConfig,
	service *safe.ServiceClient,
	reader *safe.ContractReader,
	chainID uint64,
	log *slog.Logger,
) (*safe.ProposerClient, error) {
	proposer := &safe.Proposer{}
	if cfg.ProposerPrivateKey != "" {
		expected := ""
		if cfg.ProposerAddress != (common.Address{}) {
			expected = cfg.ProposerAddress.Hex()
		}
		var err error
		proposer, err = safe.NewProposer(cfg.ProposerPrivateKey, expected)
		if err != nil {
			return nil, err
		}
	}
	return safe.NewProposerClient(service, reader, proposer, cfg.SafeAddress, chainID, log), nil
}

func ProvideProposeTransactions(
	proposer usecase.SafeProposer,
	chain usecase.SafeChainReader,
	sink usecase.ProgressSink,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *usecase.ProposeTransactions {
	return usecase.NewProposeTransactions(proposer, chain, sink, cfg.ProposalDelay, log)
}

func ProvideListSafeTransactions(
	service usecase.SafeQueryService,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *usecase.ListSafeTransactions {
	return usecase.NewListSafeTransactions(service, cfg.SafeAddress, log)
}
