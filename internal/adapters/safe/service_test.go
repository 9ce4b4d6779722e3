package safe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

var (
	testSafe   = common.HexToAddress("0x19B3Eb3Af5D93b77a5619b047De0EED7115A19e7")
	testSender = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestClient(t *testing.T, handler http.Handler) (*ServiceClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewServiceClient(31337, srv.URL, "", testLogger())
	require.NoError(t, err)
	return client, srv
}

func TestNewServiceClient_UnknownChainWithoutURL(t *testing.T) {
	_, err := NewServiceClient(31337, "", "", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transaction service known for chain 31337")
}

func TestNewServiceClient_KnownChain(t *testing.T) {
	client, err := NewServiceClient(11155111, "", "", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://safe-transaction-sepolia.safe.global", client.baseURL)
}

func TestSafeInfo(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/safes/"+testSafe.Hex()+"/", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"address": "` + testSafe.Hex() + `",
			"nonce": 5,
			"threshold": 2,
			"owners": ["0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"],
			"version": "1.3.0"
		}`))
	}))

	info, err := client.SafeInfo(context.Background(), testSafe)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), info.Nonce)
	assert.Equal(t, 2, info.Threshold)
	assert.Len(t, info.Owners, 1)
}

func TestPendingTransactions_PagedDecode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("executed"))
		_, _ = w.Write([]byte(`{
			"count": 2,
			"next": null,
			"previous": null,
			"results": [
				{"safe": "` + testSafe.Hex() + `", "nonce": 5, "safeTxHash": "0xaa", "isExecuted": false, "value": "0"},
				{"safe": "` + testSafe.Hex() + `", "nonce": 6, "safeTxHash": "0xbb", "isExecuted": false, "value": "0"}
			]
		}`))
	}))

	page, err := client.PendingTransactions(context.Background(), testSafe)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 5, page.Results[0].Nonce)
	assert.Nil(t, page.Next)
}

func TestProposeTransaction_PayloadShape(t *testing.T) {
	var got proposalRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))

	tx := NewSafeTx(domain.MetaTransactionData{
		To:        common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Value:     big.NewInt(42),
		Data:      []byte{0xde, 0xad},
		Operation: domain.OperationCall,
	}, 7)
	hash := common.HexToHash("0x1234")

	err := client.ProposeTransaction(context.Background(), testSafe, tx, hash, testSender, []byte{0x01, 0x02})
	require.NoError(t, err)

	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", got.To)
	assert.Equal(t, "42", got.Value)
	assert.Equal(t, "0xdead", got.Data)
	assert.Equal(t, 0, got.Operation)
	assert.Equal(t, "7", got.Nonce)
	assert.Equal(t, hash.Hex(), got.ContractTransactionHash)
	assert.Equal(t, testSender.Hex(), got.Sender)
	assert.Equal(t, "0x0102", got.Signature)
	assert.Equal(t, "0", got.SafeTxGas)
}

func TestProposeTransaction_UnprocessableIsNonceConflict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"nonFieldErrors": ["Tx with nonce 5 for safe already executed"]}`))
	}))

	tx := NewSafeTx(domain.MetaTransactionData{To: testSafe, Value: big.NewInt(0)}, 5)
	err := client.ProposeTransaction(context.Background(), testSafe, tx, common.Hash{}, testSender, nil)
	require.Error(t, err)

	var conflict *domain.NonceConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, uint64(5), conflict.Nonce)
}

func TestProposeTransaction_OtherErrorIsSafeTransactionError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"signature": ["invalid"]}`))
	}))

	tx := NewSafeTx(domain.MetaTransactionData{To: testSafe, Value: big.NewInt(0)}, 5)
	err := client.ProposeTransaction(context.Background(), testSafe, tx, common.Hash{}, testSender, nil)
	require.Error(t, err)

	var txErr *domain.SafeTransactionError
	require.ErrorAs(t, err, &txErr)
	var conflict *domain.NonceConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestUnreachableServiceIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewServiceClient(31337, url, "", testLogger())
	require.NoError(t, err)

	_, err = client.SafeInfo(context.Background(), testSafe)
	require.Error(t, err)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewServiceClient(31337, srv.URL, "secret-key", testLogger())
	require.NoError(t, err)
	_, err = client.ModuleTransactions(context.Background(), testSafe)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}
