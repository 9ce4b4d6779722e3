package render

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

func sampleInputs() []domain.TransactionInput {
	return []domain.TransactionInput{
		{To: "0x0000000000000000000000000000000000000001", Value: "0", Data: "0xdeadbeef", Operation: domain.OperationCall},
		{To: "0x0000000000000000000000000000000000000002", Value: "1000", Data: "0x", Operation: domain.OperationCall},
	}
}

func TestRunRendererDryRun(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.ExecuteResult{
		Script: usecase.ScriptPhase{ChainID: 11155111},
		Inputs: sampleInputs(),
		DryRun: true,
	}
	require.NoError(t, NewRunRenderer(&buf).Render(result))

	out := buf.String()
	assert.Contains(t, out, "0x0000000000000000000000000000000000000001")
	assert.Contains(t, out, "0x0000000000000000000000000000000000000002")
	assert.Contains(t, out, "Dry run: nothing was signed or proposed")
	assert.NotContains(t, out, "Proposed")
}

func TestRunRendererProposed(t *testing.T) {
	var buf bytes.Buffer
	hashes := []common.Hash{
		common.HexToHash("0xaa"),
		common.HexToHash("0xbb"),
	}
	result := &usecase.ExecuteResult{
		Script: usecase.ScriptPhase{ChainID: 11155111},
		Inputs: sampleInputs(),
		Hashes: hashes,
	}
	require.NoError(t, NewRunRenderer(&buf).Render(result))

	out := buf.String()
	assert.Contains(t, out, hashes[0].Hex())
	assert.Contains(t, out, hashes[1].Hex())
	assert.Contains(t, out, "Proposed 2 transaction(s) on chain 11155111")
}

func TestRunRendererNotesScriptFallback(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.ExecuteResult{
		Script: usecase.ScriptPhase{ChainID: 1, Err: assert.AnError},
		Inputs: sampleInputs(),
		DryRun: true,
	}
	require.NoError(t, NewRunRenderer(&buf).Render(result))
	assert.Contains(t, buf.String(), "used the last broadcast artifact")
}
