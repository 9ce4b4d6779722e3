package forge

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultChainID is the last-resort chain id when the RPC cannot be queried
// and the hostname is unrecognized (Sepolia).
const DefaultChainID uint64 = 11155111

// hostChainIDs maps well-known RPC hostname fragments to chain ids. Used as
// the second tier of chain id resolution when the endpoint itself does not
// answer, which happens with flaky endpoints right after a fork or script
// run completes.
var hostChainIDs = map[string]uint64{
	"mainnet":   1,
	"sepolia":   11155111,
	"holesky":   17000,
	"optimism":  10,
	"arbitrum":  42161,
	"base":      8453,
	"polygon":   137,
	"gnosis":    100,
	"bellecour": 134,
}

// ResolveChainID determines the chain id for an RPC endpoint using three
// tiers: a live eth_chainId query (with bounded retry), a static
// hostname lookup, and finally DefaultChainID.
func ResolveChainID(ctx context.Context, rpcURL string, log *slog.Logger) (uint64, error) {
	chainID, err := retry.DoWithData(
		func() (uint64, error) {
			return queryChainID(ctx, rpcURL)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return chainID, nil
	}
	log.Warn("chain id query failed, falling back to hostname lookup", "rpc", redactURL(rpcURL), "err", err)

	if id, ok := ChainIDFromHostname(rpcURL); ok {
		return id, nil
	}
	log.Warn("unrecognized RPC hostname, using default chain id", "chainId", DefaultChainID)
	return DefaultChainID, nil
}

// ChainIDFromHostname resolves a chain id from well-known hostname
// fragments.
func ChainIDFromHostname(rpcURL string) (uint64, bool) {
	u, err := url.Parse(rpcURL)
	if err != nil || u.Host == "" {
		return 0, false
	}
	host := strings.ToLower(u.Host)
	for fragment, id := range hostChainIDs {
		if strings.Contains(host, fragment) {
			return id, true
		}
	}
	return 0, false
}

func queryChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// redactURL strips credentials and path (API keys live there) from an RPC
// URL before it reaches logs or errors.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}
	return u.Scheme + "://" + u.Host
}
