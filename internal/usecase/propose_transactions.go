package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// DefaultProposalDelay spaces successive proposals so the transaction
// service does not reject near-simultaneous submissions. It is a
// rate-limit courtesy, not a correctness requirement.
const DefaultProposalDelay = 1 * time.Second

// ProposeTransactions proposes batches of transactions to a Safe with
// sequential nonces. On a nonce race it retries once against the fresh
// on-chain nonce; on a structural batch failure it falls back to
// proposing one at a time with service-assigned nonces.
type ProposeTransactions struct {
	log      *slog.Logger
	proposer SafeProposer
	chain    SafeChainReader
	progress ProgressSink
	delay    time.Duration
	sleep    func(time.Duration)
}

// NewProposeTransactions builds the submission engine.
func NewProposeTransactions(
	proposer SafeProposer,
	chain SafeChainReader,
	progress ProgressSink,
	delay time.Duration,
	log *slog.Logger,
) *ProposeTransactions {
	if delay <= 0 {
		delay = DefaultProposalDelay
	}
	return &ProposeTransactions{
		log:      log.With("component", "ProposeTransactions"),
		proposer: proposer,
		chain:    chain,
		progress: progress,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// ProposeSequential proposes every transaction in order with explicit
// sequential nonces starting at the Safe's current on-chain nonce. The
// base nonce is queried fresh on every call. Returned hashes are in
// input order.
func (uc *ProposeTransactions) ProposeSequential(ctx context.Context, inputs []domain.TransactionInput) ([]common.Hash, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	metas, err := uc.toMetaTransactions(inputs)
	if err != nil {
		return nil, err
	}

	hashes, err := uc.proposeWithNonces(ctx, metas)
	if err == nil {
		return hashes, nil
	}

	// A nonce conflict that survived its retry is a real queue
	// disagreement, not something one-at-a-time submission can fix.
	var conflict *domain.NonceConflictError
	if errors.As(err, &conflict) {
		return nil, err
	}

	uc.log.Warn("sequential-nonce submission failed, falling back to one-at-a-time proposals", "error", err)
	return uc.proposeOneAtATime(ctx, metas)
}

// VerifyProposerIsOwner confirms the signing account is an owner of the
// Safe. The transaction service rejects proposals from non-owners anyway,
// but only one at a time after signing; checking up front fails the whole
// run with an actionable error instead.
func (uc *ProposeTransactions) VerifyProposerIsOwner(ctx context.Context) error {
	owners, err := uc.chain.Owners(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch safe owners: %w", err)
	}
	sender := uc.proposer.SenderAddress()
	for _, owner := range owners {
		if owner == sender {
			return nil
		}
	}
	return &domain.ConfigError{Fields: []domain.FieldError{{
		Field:  "proposer_address",
		Reason: fmt.Sprintf("%s is not an owner of the safe", sender.Hex()),
	}}}
}

func (uc *ProposeTransactions) toMetaTransactions(inputs []domain.TransactionInput) ([]domain.MetaTransactionData, error) {
	metas := make([]domain.MetaTransactionData, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		metas = append(metas, in.ToMetaTransaction())
	}
	return metas, nil
}

func (uc *ProposeTransactions) proposeWithNonces(ctx context.Context, metas []domain.MetaTransactionData) ([]common.Hash, error) {
	base, err := uc.chain.Nonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve safe nonce: %w", err)
	}
	uc.log.Info("resolved base nonce", "nonce", base, "transactions", len(metas))

	hashes := make([]common.Hash, 0, len(metas))
	for i, meta := range metas {
		if i > 0 {
			uc.sleep(uc.delay)
		}
		uc.progress.Update(fmt.Sprintf("Proposing transaction %d/%d (nonce %d)", i+1, len(metas), base+uint64(i)))

		hash, rebased, err := uc.proposeAt(ctx, meta, base, i)
		if err != nil {
			return nil, err
		}
		base = rebased
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

// proposeAt submits one transaction at base+i. On a nonce conflict it
// re-reads the live nonce: a changed nonce means another proposal landed
// first and the submission is retried once at fresh+i; an unchanged
// nonce means the rejection was not a race, so the conflict propagates.
// The returned base is the one the rest of the batch must continue from:
// the fresh nonce after a successful retry, so subsequent nonces stay
// strictly increasing, and the unchanged base otherwise.
func (uc *ProposeTransactions) proposeAt(ctx context.Context, meta domain.MetaTransactionData, base uint64, i int) (common.Hash, uint64, error) {
	attempted := base + uint64(i)
	hash, err := uc.proposer.ProposeWithNonce(ctx, meta, attempted)
	if err == nil {
		return hash, base, nil
	}

	var conflict *domain.NonceConflictError
	if !errors.As(err, &conflict) {
		return common.Hash{}, base, err
	}

	fresh, nerr := uc.chain.Nonce(ctx)
	if nerr != nil {
		return common.Hash{}, base, fmt.Errorf("failed to re-resolve safe nonce after conflict at %d: %w", attempted, nerr)
	}
	if fresh == attempted {
		uc.log.Error("nonce conflict with no nonce movement", "nonce", attempted)
		return common.Hash{}, base, err
	}

	retryNonce := fresh + uint64(i)
	uc.log.Warn("nonce conflict, retrying with fresh nonce",
		"attempted", attempted, "fresh", fresh, "retry", retryNonce)
	hash, err = uc.proposer.ProposeWithNonce(ctx, meta, retryNonce)
	if err != nil {
		return common.Hash{}, base, err
	}
	return hash, fresh, nil
}

// proposeOneAtATime is the fallback strategy: every transaction goes
// through the service-assigned-nonce path in order. Any failure here is
// fatal and aborts the rest of the batch.
func (uc *ProposeTransactions) proposeOneAtATime(ctx context.Context, metas []domain.MetaTransactionData) ([]common.Hash, error) {
	hashes := make([]common.Hash, 0, len(metas))
	for i, meta := range metas {
		if i > 0 {
			uc.sleep(uc.delay)
		}
		uc.progress.Update(fmt.Sprintf("Proposing transaction %d/%d (service nonce)", i+1, len(metas)))

		hash, err := uc.proposer.ProposeNext(ctx, meta)
		if err != nil {
			return nil, fmt.Errorf("fallback proposal %d/%d failed: %w", i+1, len(metas), err)
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}
