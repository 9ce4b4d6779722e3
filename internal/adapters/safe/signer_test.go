package safe

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// First anvil dev account.
const (
	anvilKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	anvilAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestNewProposer_DerivesAddress(t *testing.T) {
	p, err := NewProposer(anvilKey, "")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(anvilAddress), p.Address)
}

func TestNewProposer_AddressMismatch(t *testing.T) {
	_, err := NewProposer(anvilKey, "0x19B3Eb3Af5D93b77a5619b047De0EED7115A19e7")
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	// The private key must never leak into the error.
	assert.NotContains(t, err.Error(), anvilKey[2:])
}

func TestNewProposer_BadKey(t *testing.T) {
	_, err := NewProposer("0xnotakey", "")
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSafeTxHash_Deterministic(t *testing.T) {
	safeAddr := common.HexToAddress("0x19B3Eb3Af5D93b77a5619b047De0EED7115A19e7")
	tx := NewSafeTx(domain.MetaTransactionData{
		To:        common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Value:     big.NewInt(0),
		Data:      []byte{0xa9, 0x05, 0x9c, 0xbb},
		Operation: domain.OperationCall,
	}, 5)

	h1, err := SafeTxHash(safeAddr, 11155111, tx)
	require.NoError(t, err)
	h2, err := SafeTxHash(safeAddr, 11155111, tx)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// Every SafeTx field participates in the hash.
	other := tx
	other.Nonce = 6
	h3, err := SafeTxHash(safeAddr, 11155111, other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	h4, err := SafeTxHash(safeAddr, 1, tx)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)
}

func TestSignHash_RecoversProposer(t *testing.T) {
	p, err := NewProposer(anvilKey, anvilAddress)
	require.NoError(t, err)

	hash := crypto.Keccak256Hash([]byte("safe tx"))
	sig, err := p.SignHash(hash)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	// Undo the eth-style v offset and recover the signer.
	recoverable := make([]byte, 65)
	copy(recoverable, sig)
	recoverable[64] -= 27
	pub, err := crypto.SigToPub(hash.Bytes(), recoverable)
	require.NoError(t, err)
	assert.Equal(t, p.Address, crypto.PubkeyToAddress(*pub))
}
