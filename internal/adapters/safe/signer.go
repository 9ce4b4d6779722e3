package safe

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// SafeTx is the full Safe transaction as hashed and signed under EIP-712.
// Gas fields are zero for plain proposals; the executing owner pays.
type SafeTx struct {
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      domain.Operation
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
	Nonce          uint64
}

// NewSafeTx builds a SafeTx from a meta-transaction and an explicit nonce.
func NewSafeTx(meta domain.MetaTransactionData, nonce uint64) SafeTx {
	return SafeTx{
		To:        meta.To,
		Value:     meta.Value,
		Data:      meta.Data,
		Operation: meta.Operation,
		SafeTxGas: big.NewInt(0),
		BaseGas:   big.NewInt(0),
		GasPrice:  big.NewInt(0),
		Nonce:     nonce,
	}
}

// Proposer is the Safe owner account that signs proposals. Exactly one
// proposer is supported per run.
type Proposer struct {
	Address common.Address
	key     *ecdsa.PrivateKey
}

// NewProposer derives a proposer from a hex private key and checks it
// against the expected address. The key never appears in errors.
func NewProposer(privateKeyHex string, expectedAddress string) (*Proposer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, &domain.ConfigError{Fields: []domain.FieldError{
			{Field: "proposer private key", Reason: "not a valid secp256k1 private key"},
		}}
	}

	derived := crypto.PubkeyToAddress(key.PublicKey)
	if expectedAddress != "" && derived != common.HexToAddress(expectedAddress) {
		return nil, &domain.ConfigError{Fields: []domain.FieldError{
			{Field: "proposer address", Reason: fmt.Sprintf("key derives %s, config says %s", derived.Hex(), expectedAddress)},
		}}
	}

	return &Proposer{Address: derived, key: key}, nil
}

// SafeTxHash computes the EIP-712 hash of a Safe transaction for the given
// Safe contract and chain.
func SafeTxHash(safeAddress common.Address, chainID uint64, tx SafeTx) (common.Hash, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"SafeTx": []apitypes.Type{
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "data", Type: "bytes"},
				{Name: "operation", Type: "uint8"},
				{Name: "safeTxGas", Type: "uint256"},
				{Name: "baseGas", Type: "uint256"},
				{Name: "gasPrice", Type: "uint256"},
				{Name: "gasToken", Type: "address"},
				{Name: "refundReceiver", Type: "address"},
				{Name: "nonce", Type: "uint256"},
			},
		},
		PrimaryType: "SafeTx",
		Domain: apitypes.TypedDataDomain{
			ChainId:           math.NewHexOrDecimal256(int64(chainID)),
			VerifyingContract: safeAddress.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"to":             tx.To.Hex(),
			"value":          tx.Value.String(),
			"data":           hexutil.Encode(tx.Data),
			"operation":      fmt.Sprintf("%d", tx.Operation),
			"safeTxGas":      tx.SafeTxGas.String(),
			"baseGas":        tx.BaseGas.String(),
			"gasPrice":       tx.GasPrice.String(),
			"gasToken":       tx.GasToken.Hex(),
			"refundReceiver": tx.RefundReceiver.Hex(),
			"nonce":          fmt.Sprintf("%d", tx.Nonce),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash safe transaction: %w", err)
	}
	return common.BytesToHash(hash), nil
}

// SignHash produces an eth-style ECDSA signature (v in {27, 28}) over a
// Safe transaction hash, as the transaction service expects from owners.
func (p *Proposer) SignHash(hash common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(hash.Bytes(), p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign safe transaction hash: %w", err)
	}
	sig[64] += 27
	return sig, nil
}
