package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/safe"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// SafeProposer signs and submits proposals to the Safe transaction service.
type SafeProposer interface {
	// SenderAddress returns the proposer account used to sign proposals.
	SenderAddress() common.Address
	// ProposeWithNonce submits one transaction at an explicit nonce.
	ProposeWithNonce(ctx context.Context, meta domain.MetaTransactionData, nonce uint64) (common.Hash, error)
	// ProposeNext submits one transaction at the service-recommended nonce.
	ProposeNext(ctx context.Context, meta domain.MetaTransactionData) (common.Hash, error)
}

// SafeChainReader reads Safe state directly from the chain. Nonce must
// always hit the node; the submission engine depends on it being fresh.
type SafeChainReader interface {
	Nonce(ctx context.Context) (uint64, error)
	Owners(ctx context.Context) ([]common.Address, error)
	Threshold(ctx context.Context) (uint64, error)
}

// SafeQueryService reads queue and history state from the transaction service.
type SafeQueryService interface {
	SafeInfo(ctx context.Context, safeAddress common.Address) (*safe.SafeInfo, error)
	PendingTransactions(ctx context.Context, safeAddress common.Address) ([]safe.MultisigTransaction, error)
	MultisigTransactions(ctx context.Context, safeAddress common.Address) ([]safe.MultisigTransaction, error)
	AllTransactions(ctx context.Context, safeAddress common.Address) ([]safe.AnyTransaction, error)
	IncomingTransfers(ctx context.Context, safeAddress common.Address) ([]safe.IncomingTransfer, error)
	ModuleTransactions(ctx context.Context, safeAddress common.Address) ([]safe.ModuleTransaction, error)
	GetTransaction(ctx context.Context, safeTxHash common.Hash) (*safe.MultisigTransaction, error)
}

// ForkRunner manages a local anvil fork process.
type ForkRunner interface {
	Start(ctx context.Context, cfg domain.ForkConfig) error
	Stop() error
	StopOnError()
	IsRunning() bool
	LocalRPCURL() string
	Status() domain.ForkStatus
}

// ScriptRunner executes a forge script against an RPC endpoint and reports
// the chain id the run targeted.
type ScriptRunner interface {
	Run(ctx context.Context, cfg ScriptRunConfig) (uint64, error)
}

// ScriptRunConfig mirrors the forge adapter's run configuration without
// binding the usecase layer to the adapter package.
type ScriptRunConfig struct {
	ScriptPath   string
	ContractName string
	RPCURL       string
	ExtraArgs    []string
	Env          map[string]string
}

// BroadcastReader loads transactions from foundry broadcast artifacts.
type BroadcastReader interface {
	ReadBroadcast(scriptName string, chainID uint64) ([]domain.BroadcastTransaction, error)
}

// ProgressSink receives step-level progress from long-running operations.
// Implementations render spinners or plain log lines.
type ProgressSink interface {
	Start(message string)
	Update(message string)
	Done(message string)
	Fail(message string)
}

// Confirmer asks the operator to approve an action before it runs.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
