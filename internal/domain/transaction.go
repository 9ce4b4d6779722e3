package domain

import (
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Operation is the Safe call kind for a meta-transaction.
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "call"
	case OperationDelegateCall:
		return "delegatecall"
	default:
		return "unknown"
	}
}

// TransactionInput is the normalized transaction consumed by the submission
// engine. Value is a decimal wei string; Data is 0x-prefixed hex (possibly
// just "0x").
type TransactionInput struct {
	To        string
	Value     string
	Data      string
	Operation Operation
}

// MetaTransactionData is the Safe-protocol transaction shape signed and
// hashed independently of the underlying chain's native format.
type MetaTransactionData struct {
	To        common.Address
	Value     *big.Int
	Data      []byte
	Operation Operation
}

// NormalizeBroadcastTx converts a raw broadcast entry into a normalized
// TransactionInput. Value conversion never fails: an unparsable hex value is
// logged and treated as zero so one malformed entry cannot abort an
// otherwise valid batch.
func NormalizeBroadcastTx(tx BroadcastTransaction, log *slog.Logger) TransactionInput {
	data := tx.Transaction.Input
	if data == "" {
		data = "0x"
	}
	return TransactionInput{
		To:        tx.Transaction.To,
		Value:     HexToDecimalString(tx.Transaction.Value, log),
		Data:      data,
		Operation: OperationCall,
	}
}

// HexToDecimalString converts a hex wei amount to its decimal string form.
// Empty, "0x" and "0x0" all map to "0". Malformed input logs a warning and
// maps to "0" as well.
func HexToDecimalString(hexValue string, log *slog.Logger) string {
	trimmed := strings.TrimPrefix(hexValue, "0x")
	if trimmed == "" || trimmed == "0" {
		return "0"
	}
	v, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		if log != nil {
			log.Warn("unparsable hex value, defaulting to 0", "value", hexValue)
		}
		return "0"
	}
	return v.String()
}

// Validate checks the input in a fixed order: address, value, calldata,
// operation. The first failing rule reports the field and the reason.
func (t TransactionInput) Validate() error {
	if t.To == "" || !common.IsHexAddress(t.To) {
		return &ValidationError{Field: "to", Value: t.To, Reason: "not a valid address"}
	}
	if !isNumericValue(t.Value) {
		return &ValidationError{Field: "value", Value: t.Value, Reason: "not a decimal or hex amount"}
	}
	if !isValidCalldata(t.Data) {
		return &ValidationError{Field: "data", Value: t.Data, Reason: "not valid hex calldata"}
	}
	if t.Operation != OperationCall && t.Operation != OperationDelegateCall {
		return &ValidationError{Field: "operation", Value: t.Operation.String(), Reason: "must be call or delegatecall"}
	}
	return nil
}

// ToMetaTransaction maps a validated input to its Safe-domain shape.
func (t TransactionInput) ToMetaTransaction() MetaTransactionData {
	value := new(big.Int)
	if strings.HasPrefix(t.Value, "0x") {
		value.SetString(strings.TrimPrefix(t.Value, "0x"), 16)
	} else {
		value.SetString(t.Value, 10)
	}
	return MetaTransactionData{
		To:        common.HexToAddress(t.To),
		Value:     value,
		Data:      common.FromHex(t.Data),
		Operation: t.Operation,
	}
}

func isNumericValue(v string) bool {
	if v == "" {
		return false
	}
	if strings.HasPrefix(v, "0x") {
		n, ok := new(big.Int).SetString(strings.TrimPrefix(v, "0x"), 16)
		return ok && n.Sign() >= 0
	}
	n, ok := new(big.Int).SetString(v, 10)
	return ok && n.Sign() >= 0
}

func isValidCalldata(data string) bool {
	if data == "" || data == "0x" {
		return true
	}
	if !strings.HasPrefix(data, "0x") {
		return false
	}
	hexPart := data[2:]
	if len(hexPart)%2 != 0 {
		return false
	}
	for _, c := range hexPart {
		if !(('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')) {
			return false
		}
	}
	return true
}
