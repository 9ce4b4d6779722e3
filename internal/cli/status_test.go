package cli

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSafeTxHash(t *testing.T) {
	valid := "0x" + strings.Repeat("ab", 32)
	hash, err := parseSafeTxHash(valid)
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash(valid), hash)

	for _, raw := range []string{
		"",
		"abcd",
		"0x1234",
		"0x" + strings.Repeat("zz", 32), // right length, not hex
		"0x" + strings.Repeat("ab", 33),
	} {
		_, err := parseSafeTxHash(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
