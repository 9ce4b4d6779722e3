package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/safe"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ListKind selects which transaction view of the Safe to fetch.
type ListKind string

const (
	ListPending  ListKind = "pending"
	ListAll      ListKind = "all"
	ListIncoming ListKind = "incoming"
	ListMultisig ListKind = "multisig"
	ListModule   ListKind = "module"
)

// ParseListKind validates a user-supplied kind string.
func ParseListKind(s string) (ListKind, error) {
	switch ListKind(s) {
	case ListPending, ListAll, ListIncoming, ListMultisig, ListModule:
		return ListKind(s), nil
	default:
		return "", &domain.ValidationError{
			Field:  "kind",
			Value:  s,
			Reason: "must be one of pending, all, incoming, multisig, module",
		}
	}
}

// SafeOverview is the owner/threshold/nonce summary shown above listings.
type SafeOverview struct {
	Address   common.Address
	Nonce     uint64
	Threshold uint64
	Owners    []common.Address
}

// Listing holds whichever view was requested; only one slice is populated.
type Listing struct {
	Kind     ListKind
	Multisig []safe.MultisigTransaction
	Any      []safe.AnyTransaction
	Incoming []safe.IncomingTransfer
	Module   []safe.ModuleTransaction
}

// ListSafeTransactions reads queue and history views from the Safe
// transaction service. Pure read-throughs, no signing.
type ListSafeTransactions struct {
	log         *slog.Logger
	service     SafeQueryService
	safeAddress common.Address
}

func NewListSafeTransactions(service SafeQueryService, safeAddress common.Address, log *slog.Logger) *ListSafeTransactions {
	return &ListSafeTransactions{
		log:         log.With("component", "ListSafeTransactions"),
		service:     service,
		safeAddress: safeAddress,
	}
}

// Overview fetches the Safe's owners, threshold, and service-tracked nonce.
// An owner-less Safe is a configuration problem, not a transient one.
func (uc *ListSafeTransactions) Overview(ctx context.Context) (*SafeOverview, error) {
	info, err := uc.service.SafeInfo(ctx, uc.safeAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch safe info: %w", err)
	}
	if len(info.Owners) == 0 {
		return nil, &domain.ConfigError{Fields: []domain.FieldError{{
			Field:  "safe address",
			Reason: fmt.Sprintf("no owners found for safe %s", uc.safeAddress.Hex()),
		}}}
	}

	owners := make([]common.Address, 0, len(info.Owners))
	for _, o := range info.Owners {
		owners = append(owners, common.HexToAddress(o))
	}
	return &SafeOverview{
		Address:   uc.safeAddress,
		Nonce:     info.Nonce,
		Threshold: uint64(info.Threshold),
		Owners:    owners,
	}, nil
}

// List fetches one transaction view of the Safe.
func (uc *ListSafeTransactions) List(ctx context.Context, kind ListKind) (*Listing, error) {
	listing := &Listing{Kind: kind}
	var err error

	switch kind {
	case ListPending:
		listing.Multisig, err = uc.service.PendingTransactions(ctx, uc.safeAddress)
	case ListMultisig:
		listing.Multisig, err = uc.service.MultisigTransactions(ctx, uc.safeAddress)
	case ListAll:
		listing.Any, err = uc.service.AllTransactions(ctx, uc.safeAddress)
	case ListIncoming:
		listing.Incoming, err = uc.service.IncomingTransfers(ctx, uc.safeAddress)
	case ListModule:
		listing.Module, err = uc.service.ModuleTransactions(ctx, uc.safeAddress)
	default:
		return nil, fmt.Errorf("unknown listing kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s transactions: %w", kind, err)
	}
	return listing, nil
}

// Status looks up a proposed transaction by its Safe transaction hash.
func (uc *ListSafeTransactions) Status(ctx context.Context, safeTxHash common.Hash) (*safe.MultisigTransaction, error) {
	tx, err := uc.service.GetTransaction(ctx, safeTxHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", safeTxHash.Hex(), err)
	}
	return tx, nil
}
