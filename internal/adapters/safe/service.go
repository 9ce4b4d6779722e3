package safe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ServiceClient talks to the Safe Transaction Service REST API for a single
// chain.
type ServiceClient struct {
	log        *slog.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewServiceClient creates a client for the given chain. serviceURL
// overrides the built-in per-chain table when non-empty (custom or
// self-hosted services).
func NewServiceClient(chainID uint64, serviceURL, apiKey string, log *slog.Logger) (*ServiceClient, error) {
	baseURL := serviceURL
	if baseURL == "" {
		url, ok := TransactionServiceURLs[chainID]
		if !ok {
			return nil, fmt.Errorf("no transaction service known for chain %d, set a service URL explicitly", chainID)
		}
		baseURL = url
	}

	return &ServiceClient{
		log:     log.With("component", "SafeService"),
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SafeInfo retrieves owners, threshold, and the service-view nonce.
func (c *ServiceClient) SafeInfo(ctx context.Context, safeAddress common.Address) (*SafeInfo, error) {
	var info SafeInfo
	url := fmt.Sprintf("%s/api/v1/safes/%s/", c.baseURL, safeAddress.Hex())
	if err := c.getJSON(ctx, url, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// PendingTransactions lists queued (not yet executed) multisig transactions.
func (c *ServiceClient) PendingTransactions(ctx context.Context, safeAddress common.Address) (*Page[MultisigTransaction], error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/?executed=false&ordering=nonce", c.baseURL, safeAddress.Hex())
	return getPage[MultisigTransaction](ctx, c, url)
}

// MultisigTransactions lists all multisig transactions, executed or not.
func (c *ServiceClient) MultisigTransactions(ctx context.Context, safeAddress common.Address) (*Page[MultisigTransaction], error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/", c.baseURL, safeAddress.Hex())
	return getPage[MultisigTransaction](ctx, c, url)
}

// AllTransactions lists the combined feed (multisig, module, incoming).
func (c *ServiceClient) AllTransactions(ctx context.Context, safeAddress common.Address) (*Page[AnyTransaction], error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/all-transactions/", c.baseURL, safeAddress.Hex())
	return getPage[AnyTransaction](ctx, c, url)
}

// IncomingTransfers lists inbound native and token transfers.
func (c *ServiceClient) IncomingTransfers(ctx context.Context, safeAddress common.Address) (*Page[IncomingTransfer], error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/incoming-transfers/", c.baseURL, safeAddress.Hex())
	return getPage[IncomingTransfer](ctx, c, url)
}

// ModuleTransactions lists transactions executed through Safe modules.
func (c *ServiceClient) ModuleTransactions(ctx context.Context, safeAddress common.Address) (*Page[ModuleTransaction], error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/module-transactions/", c.baseURL, safeAddress.Hex())
	return getPage[ModuleTransaction](ctx, c, url)
}

// GetTransaction retrieves a single multisig transaction by Safe tx hash.
func (c *ServiceClient) GetTransaction(ctx context.Context, safeTxHash common.Hash) (*MultisigTransaction, error) {
	var tx MultisigTransaction
	url := fmt.Sprintf("%s/api/v1/multisig-transactions/%s/", c.baseURL, safeTxHash.Hex())
	if err := c.getJSON(ctx, url, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ProposeTransaction submits a signed proposal. A 422 response is
// classified as a NonceConflictError so the submission engine can
// distinguish a nonce race from a structural rejection.
func (c *ServiceClient) ProposeTransaction(ctx context.Context, safeAddress common.Address, tx SafeTx, safeTxHash common.Hash, sender common.Address, signature []byte) error {
	body := proposalRequest{
		To:                      tx.To.Hex(),
		Value:                   tx.Value.String(),
		Data:                    hexutil.Encode(tx.Data),
		Operation:               int(tx.Operation),
		SafeTxGas:               tx.SafeTxGas.String(),
		BaseGas:                 tx.BaseGas.String(),
		GasPrice:                tx.GasPrice.String(),
		GasToken:                tx.GasToken.Hex(),
		RefundReceiver:          tx.RefundReceiver.Hex(),
		Nonce:                   fmt.Sprintf("%d", tx.Nonce),
		ContractTransactionHash: safeTxHash.Hex(),
		Sender:                  sender.Hex(),
		Signature:               hexutil.Encode(signature),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal proposal: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/", c.baseURL, safeAddress.Hex())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: "submit proposal", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return &domain.NonceConflictError{Nonce: tx.Nonce, Detail: string(respBody)}
	}
	return &domain.SafeTransactionError{
		SafeTxHash: safeTxHash.Hex(),
		Nonce:      tx.Nonce,
		Detail:     fmt.Sprintf("service returned status %d: %s", resp.StatusCode, string(respBody)),
	}
}

func getPage[T any](ctx context.Context, c *ServiceClient, url string) (*Page[T], error) {
	var page Page[T]
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *ServiceClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: "query transaction service", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *ServiceClient) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
