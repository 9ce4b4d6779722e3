package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToDecimalString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "0"},
		{"bare prefix", "0x", "0"},
		{"zero", "0x0", "0"},
		{"ff", "0xff", "255"},
		{"one ether", "0xde0b6b3a7640000", "1000000000000000000"},
		{"no prefix", "de0b6b3a7640000", "1000000000000000000"},
		{"garbage", "0xzznope", "0"},
		{"garbage no prefix", "hello", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToDecimalString(tt.in, nil))
		})
	}
}

func TestNormalizeBroadcastTx(t *testing.T) {
	tx := BroadcastTransaction{
		TransactionType: "CALL",
		Transaction: BroadcastTxInner{
			To:    "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			Value: "0xde0b6b3a7640000",
			Input: "0xa9059cbb",
		},
	}
	got := NormalizeBroadcastTx(tx, nil)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", got.To)
	assert.Equal(t, "1000000000000000000", got.Value)
	assert.Equal(t, "0xa9059cbb", got.Data)
	assert.Equal(t, OperationCall, got.Operation)
}

func TestNormalizeBroadcastTx_EmptyInput(t *testing.T) {
	got := NormalizeBroadcastTx(BroadcastTransaction{
		Transaction: BroadcastTxInner{To: "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
	}, nil)
	assert.Equal(t, "0x", got.Data)
	assert.Equal(t, "0", got.Value)
}

func TestTransactionInputValidate(t *testing.T) {
	valid := TransactionInput{
		To:        "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		Value:     "0",
		Data:      "0x",
		Operation: OperationCall,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TransactionInput)
		field  string
	}{
		{"invalid address", func(tx *TransactionInput) { tx.To = "0xINVALID" }, "to"},
		{"empty address", func(tx *TransactionInput) { tx.To = "" }, "to"},
		{"bad value", func(tx *TransactionInput) { tx.Value = "lots" }, "value"},
		{"negative value", func(tx *TransactionInput) { tx.Value = "-1" }, "value"},
		{"negative hex value", func(tx *TransactionInput) { tx.Value = "0x-5" }, "value"},
		{"bad calldata", func(tx *TransactionInput) { tx.Data = "0xzz" }, "data"},
		{"odd calldata", func(tx *TransactionInput) { tx.Data = "0xabc" }, "data"},
		{"unprefixed calldata", func(tx *TransactionInput) { tx.Data = "abcd" }, "data"},
		{"bad operation", func(tx *TransactionInput) { tx.Operation = Operation(7) }, "operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidationOrder_AddressBeforeValue(t *testing.T) {
	// Both fields are wrong; the address must be reported first.
	tx := TransactionInput{To: "0xINVALID", Value: "junk", Data: "0x"}
	err := tx.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "to", verr.Field)
}

func TestToMetaTransaction(t *testing.T) {
	tx := TransactionInput{
		To:        "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		Value:     "42",
		Data:      "0xdeadbeef",
		Operation: OperationDelegateCall,
	}
	meta := tx.ToMetaTransaction()
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", meta.To.Hex())
	assert.Equal(t, "42", meta.Value.String())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, meta.Data)
	assert.Equal(t, OperationDelegateCall, meta.Operation)
}

func TestBroadcastTransactionIsCall(t *testing.T) {
	assert.True(t, BroadcastTransaction{TransactionType: "CALL"}.IsCall())
	assert.True(t, BroadcastTransaction{TransactionType: "call"}.IsCall())
	assert.False(t, BroadcastTransaction{TransactionType: "CREATE"}.IsCall())
	assert.False(t, BroadcastTransaction{TransactionType: ""}.IsCall())
}
