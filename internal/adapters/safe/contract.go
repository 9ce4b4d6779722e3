package safe

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// safeABI covers the read surface of the Safe contract this tool needs.
const safeABI = `[
	{"inputs":[],"name":"nonce","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getOwners","outputs":[{"internalType":"address[]","name":"","type":"address[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getThreshold","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// ContractReader reads Safe state directly from the chain. The submission
// engine uses it for the live nonce so the sequential base never depends on
// the service's eventually-consistent view.
type ContractReader struct {
	log         *slog.Logger
	client      *ethclient.Client
	safeAddress common.Address
	abi         abi.ABI
}

// NewContractReader connects to the RPC endpoint and binds the Safe address.
func NewContractReader(rpcURL string, safeAddress common.Address, log *slog.Logger) (*ContractReader, error) {
	parsed, err := abi.JSON(strings.NewReader(safeABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse safe ABI: %w", err)
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	return &ContractReader{
		log:         log.With("component", "SafeContract"),
		client:      client,
		safeAddress: safeAddress,
		abi:         parsed,
	}, nil
}

// Nonce returns the Safe's current on-chain nonce. Always queried fresh;
// never cached across batches.
func (r *ContractReader) Nonce(ctx context.Context) (uint64, error) {
	out, err := r.call(ctx, "nonce")
	if err != nil {
		return 0, err
	}
	nonce, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected nonce return type %T", out[0])
	}
	return nonce.Uint64(), nil
}

// Owners returns the Safe's owner list.
func (r *ContractReader) Owners(ctx context.Context) ([]common.Address, error) {
	out, err := r.call(ctx, "getOwners")
	if err != nil {
		return nil, err
	}
	owners, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected getOwners return type %T", out[0])
	}
	return owners, nil
}

// Threshold returns the number of confirmations required to execute.
func (r *ContractReader) Threshold(ctx context.Context) (uint64, error) {
	out, err := r.call(ctx, "getThreshold")
	if err != nil {
		return 0, err
	}
	threshold, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected getThreshold return type %T", out[0])
	}
	return threshold.Uint64(), nil
}

// Close releases the underlying RPC connection.
func (r *ContractReader) Close() {
	r.client.Close()
}

func (r *ContractReader) call(ctx context.Context, method string) ([]any, error) {
	input, err := r.abi.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	output, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &r.safeAddress,
		Data: input,
	}, nil)
	if err != nil {
		return nil, &domain.NetworkError{
			Op:  fmt.Sprintf("%s call to safe %s", method, r.safeAddress.Hex()),
			Err: err,
		}
	}

	out, err := r.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no data (is %s a safe?)", method, r.safeAddress.Hex())
	}
	return out, nil
}
