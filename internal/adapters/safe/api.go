package safe

import "time"

// TransactionServiceURLs contains the Safe Transaction Service URLs for
// different networks.
var TransactionServiceURLs = map[uint64]string{
	1:        "https://safe-transaction-mainnet.safe.global",
	10:       "https://safe-transaction-optimism.safe.global",
	56:       "https://safe-transaction-bsc.safe.global",
	100:      "https://safe-transaction-gnosis-chain.safe.global",
	137:      "https://safe-transaction-polygon.safe.global",
	8453:     "https://safe-transaction-base.safe.global",
	42161:    "https://safe-transaction-arbitrum.safe.global",
	43114:    "https://safe-transaction-avalanche.safe.global",
	11155111: "https://safe-transaction-sepolia.safe.global",
}

// SafeInfo is the service's view of a Safe: owners, threshold, and the
// on-chain nonce. The nonce does not account for pending proposals.
type SafeInfo struct {
	Address   string   `json:"address"`
	Nonce     uint64   `json:"nonce"`
	Threshold int      `json:"threshold"`
	Owners    []string `json:"owners"`
	Version   string   `json:"version"`
}

// Page is the service's pagination envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// MultisigTransaction represents a Safe multisig transaction as reported by
// the transaction service.
type MultisigTransaction struct {
	Safe                  string         `json:"safe"`
	To                    string         `json:"to"`
	Value                 string         `json:"value"`
	Data                  *string        `json:"data"`
	Operation             int            `json:"operation"`
	GasToken              string         `json:"gasToken"`
	SafeTxGas             int            `json:"safeTxGas"`
	BaseGas               int            `json:"baseGas"`
	GasPrice              string         `json:"gasPrice"`
	RefundReceiver        string         `json:"refundReceiver"`
	Nonce                 int            `json:"nonce"`
	ExecutionDate         *time.Time     `json:"executionDate"`
	SubmissionDate        time.Time      `json:"submissionDate"`
	Modified              time.Time      `json:"modified"`
	BlockNumber           *int64         `json:"blockNumber"`
	TransactionHash       *string        `json:"transactionHash"`
	SafeTxHash            string         `json:"safeTxHash"`
	Executor              *string        `json:"executor"`
	IsExecuted            bool           `json:"isExecuted"`
	IsSuccessful          *bool          `json:"isSuccessful"`
	Origin                *string        `json:"origin"`
	ConfirmationsRequired int            `json:"confirmationsRequired"`
	Confirmations         []Confirmation `json:"confirmations"`
	Trusted               bool           `json:"trusted"`
	Signatures            *string        `json:"signatures"`
}

// Confirmation represents a confirmation on a Safe transaction.
type Confirmation struct {
	Owner           string    `json:"owner"`
	SubmissionDate  time.Time `json:"submissionDate"`
	TransactionHash *string   `json:"transactionHash"`
	Signature       string    `json:"signature"`
	SignatureType   string    `json:"signatureType"`
}

// ModuleTransaction is a transaction executed through a Safe module.
type ModuleTransaction struct {
	Created         time.Time `json:"created"`
	ExecutionDate   time.Time `json:"executionDate"`
	BlockNumber     int64     `json:"blockNumber"`
	TransactionHash string    `json:"transactionHash"`
	Safe            string    `json:"safe"`
	Module          string    `json:"module"`
	To              string    `json:"to"`
	Value           string    `json:"value"`
	Data            *string   `json:"data"`
	Operation       int       `json:"operation"`
	IsSuccessful    bool      `json:"isSuccessful"`
}

// IncomingTransfer is an inbound transfer recorded by the service.
type IncomingTransfer struct {
	Type            string    `json:"type"`
	ExecutionDate   time.Time `json:"executionDate"`
	BlockNumber     int64     `json:"blockNumber"`
	TransactionHash string    `json:"transactionHash"`
	To              string    `json:"to"`
	From            string    `json:"from"`
	Value           string    `json:"value"`
	TokenAddress    *string   `json:"tokenAddress"`
}

// AnyTransaction is an entry of the all-transactions feed; txType
// discriminates the union.
type AnyTransaction struct {
	TxType          string     `json:"txType"`
	To              string     `json:"to"`
	Value           string     `json:"value"`
	Nonce           *int       `json:"nonce"`
	SafeTxHash      string     `json:"safeTxHash"`
	TransactionHash *string    `json:"transactionHash"`
	ExecutionDate   *time.Time `json:"executionDate"`
	IsExecuted      bool       `json:"isExecuted"`
}

// proposalRequest is the POST body for submitting a signed proposal.
type proposalRequest struct {
	To                      string  `json:"to"`
	Value                   string  `json:"value"`
	Data                    string  `json:"data"`
	Operation               int     `json:"operation"`
	SafeTxGas               string  `json:"safeTxGas"`
	BaseGas                 string  `json:"baseGas"`
	GasPrice                string  `json:"gasPrice"`
	GasToken                string  `json:"gasToken"`
	RefundReceiver          string  `json:"refundReceiver"`
	Nonce                   string  `json:"nonce"`
	ContractTransactionHash string  `json:"contractTransactionHash"`
	Sender                  string  `json:"sender"`
	Signature               string  `json:"signature"`
	Origin                  *string `json:"origin"`
}
