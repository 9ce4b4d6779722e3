package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig is the resolved configuration for one command invocation,
// assembled from environment variables, .env files, foundry.toml, and
// CLI flags.
type RuntimeConfig struct {
	// ProjectRoot is the foundry project the broadcast artifacts live in.
	ProjectRoot string

	RPCURL  string
	ChainID uint64

	SafeAddress common.Address
	// ServiceURL overrides the per-chain Safe transaction service URL.
	ServiceURL string
	APIKey     string

	ProposerAddress    common.Address
	ProposerPrivateKey string

	SkipFork       bool
	SkipOwnerCheck bool
	DryRun         bool
	NonInteractive bool
	Debug          bool

	// ProposalDelay spaces successive proposals to the transaction service.
	ProposalDelay time.Duration

	FoundryConfig *FoundryConfig
}

// FoundryConfig is the subset of foundry.toml this tool consumes.
type FoundryConfig struct {
	// RPCEndpoints maps network aliases to RPC URLs, env vars expanded.
	RPCEndpoints map[string]string
	// BroadcastDir is foundry's broadcast output directory, default "broadcast".
	BroadcastDir string
}

// ResolveRPCURL returns the RPC endpoint for a network alias, or the
// alias itself when it already looks like a URL.
func (f *FoundryConfig) ResolveRPCURL(network string) (string, bool) {
	if f == nil {
		return "", false
	}
	url, ok := f.RPCEndpoints[network]
	return url, ok
}
