package broadcast

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBroadcast = `{
  "chain": 11155111,
  "transactions": [
    {
      "hash": "0x01",
      "transactionType": "CALL",
      "transaction": {"to": "0x5FbDB2315678afecb367f032d93F642f64180aa3", "value": "0x0", "input": "0xa9059cbb", "gas": "0x5208"}
    },
    {
      "hash": "0x02",
      "transactionType": "CREATE",
      "contractName": "Counter",
      "transaction": {"value": "0x0", "input": "0x6080", "gas": "0x10000"}
    },
    {
      "hash": "0x03",
      "transactionType": "CALL",
      "transaction": {"to": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", "value": "0xde0b6b3a7640000", "input": "0x", "gas": "0x5208"}
    },
    {
      "hash": "0x04",
      "transactionType": "CALL",
      "transaction": {"to": "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0", "value": "0x0", "input": "0x095ea7b3", "gas": "0x5208"}
    }
  ],
  "timestamp": 1700000000,
  "commit": "abc1234"
}`

func writeBroadcast(t *testing.T, root, script string, chainID, content string) {
	t.Helper()
	dir := filepath.Join(root, "broadcast", script, chainID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run-latest.json"), []byte(content), 0644))
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestReadBroadcast_FiltersToCalls(t *testing.T) {
	root := t.TempDir()
	writeBroadcast(t, root, "Deploy.s.sol", "11155111", sampleBroadcast)

	reader := NewReader(root, "", testLogger())
	txs, err := reader.ReadBroadcast("Deploy", 11155111)
	require.NoError(t, err)

	// 3 CALL entries out of 4, in original order.
	require.Len(t, txs, 3)
	assert.Equal(t, "0x01", txs[0].Hash)
	assert.Equal(t, "0x03", txs[1].Hash)
	assert.Equal(t, "0x04", txs[2].Hash)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", txs[0].Transaction.To)
}

func TestReadBroadcast_ScriptNameVariants(t *testing.T) {
	root := t.TempDir()
	writeBroadcast(t, root, "Deploy.s.sol", "1", sampleBroadcast)

	reader := NewReader(root, "", testLogger())
	for _, name := range []string{"Deploy", "Deploy.s.sol", "script/Deploy.s.sol"} {
		txs, err := reader.ReadBroadcast(name, 1)
		require.NoError(t, err, "script ref %q", name)
		assert.Len(t, txs, 3)
	}
}

func TestReadBroadcast_CustomBroadcastDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out", "broadcasts", "Deploy.s.sol", "1")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run-latest.json"), []byte(sampleBroadcast), 0644))

	reader := NewReader(root, "out/broadcasts", testLogger())
	txs, err := reader.ReadBroadcast("Deploy", 1)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestReadBroadcast_FileNotFound(t *testing.T) {
	reader := NewReader(t.TempDir(), "", testLogger())
	_, err := reader.ReadBroadcast("Missing", 11155111)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broadcast file not found")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadBroadcast_MalformedJSON(t *testing.T) {
	root := t.TempDir()
	writeBroadcast(t, root, "Bad.s.sol", "1", "{not json")

	reader := NewReader(root, "", testLogger())
	_, err := reader.ReadBroadcast("Bad", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid broadcast artifact")
}
