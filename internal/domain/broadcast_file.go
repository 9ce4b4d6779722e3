package domain

import "strings"

// BroadcastFile represents a Foundry broadcast artifact
// (broadcast/<Script>.s.sol/<chainID>/run-latest.json). It is produced by
// forge and read-only to this tool.
type BroadcastFile struct {
	Chain        uint64                 `json:"chain"`
	Transactions []BroadcastTransaction `json:"transactions"`
	Timestamp    uint64                 `json:"timestamp"`
	Commit       string                 `json:"commit"`
}

// BroadcastTransaction is a single on-chain action recorded during a script
// run. Only CALL entries are ever replayed through the Safe; deployments and
// other types are dropped by the reader.
type BroadcastTransaction struct {
	Hash            string           `json:"hash"`
	TransactionType string           `json:"transactionType"`
	ContractName    string           `json:"contractName"`
	ContractAddr    string           `json:"contractAddress"`
	Function        string           `json:"function"`
	Transaction     BroadcastTxInner `json:"transaction"`
}

// BroadcastTxInner carries the raw transaction fields as forge records them.
// Value and Gas are hex strings; Nonce is the sender's chain nonce and is
// informational only, never used for Safe sequencing.
type BroadcastTxInner struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Input string `json:"input"`
	Gas   string `json:"gas"`
	Nonce string `json:"nonce"`
}

// TxTypeCall is the broadcast transactionType for direct calls.
const TxTypeCall = "CALL"

// IsCall reports whether the entry is a plain call (as opposed to a
// contract creation or other type).
func (t BroadcastTransaction) IsCall() bool {
	return strings.EqualFold(t.TransactionType, TxTypeCall)
}
