package safe

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// QueryService flattens the service client's paged responses into plain
// slices for the listing use cases. Only the first page is fetched; the
// service caps pages at 100 entries, which covers any realistic queue.
type QueryService struct {
	client *ServiceClient
}

func NewQueryService(client *ServiceClient) *QueryService {
	return &QueryService{client: client}
}

func (q *QueryService) SafeInfo(ctx context.Context, safeAddress common.Address) (*SafeInfo, error) {
	return q.client.SafeInfo(ctx, safeAddress)
}

func (q *QueryService) PendingTransactions(ctx context.Context, safeAddress common.Address) ([]MultisigTransaction, error) {
	page, err := q.client.PendingTransactions(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (q *QueryService) MultisigTransactions(ctx context.Context, safeAddress common.Address) ([]MultisigTransaction, error) {
	page, err := q.client.MultisigTransactions(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (q *QueryService) AllTransactions(ctx context.Context, safeAddress common.Address) ([]AnyTransaction, error) {
	page, err := q.client.AllTransactions(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (q *QueryService) IncomingTransfers(ctx context.Context, safeAddress common.Address) ([]IncomingTransfer, error) {
	page, err := q.client.IncomingTransfers(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (q *QueryService) ModuleTransactions(ctx context.Context, safeAddress common.Address) ([]ModuleTransaction, error) {
	page, err := q.client.ModuleTransactions(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (q *QueryService) GetTransaction(ctx context.Context, safeTxHash common.Hash) (*MultisigTransaction, error) {
	return q.client.GetTransaction(ctx, safeTxHash)
}
