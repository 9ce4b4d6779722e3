package safe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ProposerClient signs and submits Safe proposals. It combines the EIP-712
// signer, the transaction service client, and the on-chain reader behind
// the submission engine's ports.
type ProposerClient struct {
	log         *slog.Logger
	service     *ServiceClient
	reader      *ContractReader
	proposer    *Proposer
	safeAddress common.Address
	chainID     uint64
}

// NewProposerClient binds a proposer identity to a Safe on one chain.
func NewProposerClient(
	service *ServiceClient,
	reader *ContractReader,
	proposer *Proposer,
	safeAddress common.Address,
	chainID uint64,
	log *slog.Logger,
) *ProposerClient {
	return &ProposerClient{
		log:         log.With("component", "SafeProposer"),
		service:     service,
		reader:      reader,
		proposer:    proposer,
		safeAddress: safeAddress,
		chainID:     chainID,
	}
}

// SenderAddress is the proposer's account, used as the proposal sender.
func (c *ProposerClient) SenderAddress() common.Address {
	return c.proposer.Address
}

// ProposeWithNonce builds, hashes, signs, and submits one Safe transaction
// at an explicit nonce.
func (c *ProposerClient) ProposeWithNonce(ctx context.Context, meta domain.MetaTransactionData, nonce uint64) (common.Hash, error) {
	tx := NewSafeTx(meta, nonce)

	hash, err := SafeTxHash(c.safeAddress, c.chainID, tx)
	if err != nil {
		return common.Hash{}, err
	}
	sig, err := c.proposer.SignHash(hash)
	if err != nil {
		return common.Hash{}, err
	}

	c.log.Debug("proposing safe transaction",
		"to", meta.To.Hex(), "nonce", nonce, "safeTxHash", hash.Hex())
	if err := c.service.ProposeTransaction(ctx, c.safeAddress, tx, hash, c.proposer.Address, sig); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// ProposeNext submits one transaction at the next service-recommended
// nonce. This is the fallback path: each transaction is sequenced against
// the service's own view of the queue instead of an explicit base.
func (c *ProposerClient) ProposeNext(ctx context.Context, meta domain.MetaTransactionData) (common.Hash, error) {
	nonce, err := c.nextNonce(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch recommended nonce: %w", err)
	}
	return c.ProposeWithNonce(ctx, meta, nonce)
}

// nextNonce is the first nonce not taken by an executed or pending
// transaction. The service's /safes/ nonce is the on-chain value and does
// not advance while proposals sit unexecuted, so the pending queue must be
// consulted to avoid proposing competing alternatives at the same nonce.
func (c *ProposerClient) nextNonce(ctx context.Context) (uint64, error) {
	info, err := c.service.SafeInfo(ctx, c.safeAddress)
	if err != nil {
		return 0, err
	}
	next := info.Nonce

	pending, err := c.service.PendingTransactions(ctx, c.safeAddress)
	if err != nil {
		return 0, err
	}
	for _, tx := range pending.Results {
		if tx.Nonce >= 0 && uint64(tx.Nonce)+1 > next {
			next = uint64(tx.Nonce) + 1
		}
	}
	return next, nil
}
