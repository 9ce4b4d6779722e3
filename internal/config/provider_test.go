package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func writeFoundryProject(t *testing.T, foundryToml string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "foundry.toml"), []byte(foundryToml), 0o644))
	return root
}

func TestProviderReadsViperKeys(t *testing.T) {
	root := writeFoundryProject(t, "")
	v := NewViper()
	v.Set("project_root", root)
	v.Set("rpc_url", "https://sepolia.example.org")
	v.Set("chain_id", 11155111)
	v.Set("safe_address", "0x1111111111111111111111111111111111111111")
	v.Set("dry_run", true)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, "https://sepolia.example.org", cfg.RPCURL)
	assert.Equal(t, uint64(11155111), cfg.ChainID)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), cfg.SafeAddress)
	assert.True(t, cfg.DryRun)
}

func TestProviderReadsEnvironmentWithPrefix(t *testing.T) {
	root := writeFoundryProject(t, "")
	t.Setenv("SAFEPROP_API_KEY", "secret-token")

	v := NewViper()
	v.Set("project_root", root)

	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.APIKey)
}

func TestProviderResolvesNetworkAlias(t *testing.T) {
	t.Setenv("TEST_SEPOLIA_RPC", "https://sepolia.example.org/v2/key")
	root := writeFoundryProject(t, `
[rpc_endpoints]
sepolia = "${TEST_SEPOLIA_RPC}"
`)

	v := NewViper()
	v.Set("project_root", root)
	v.Set("rpc_url", "sepolia")

	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.example.org/v2/key", cfg.RPCURL)
}

func TestProviderToleratesMissingFoundryToml(t *testing.T) {
	v := NewViper()
	v.Set("project_root", t.TempDir())

	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "broadcast", cfg.FoundryConfig.BroadcastDir)
}

func TestValidateForProposalEnumeratesAllProblems(t *testing.T) {
	v := NewViper()
	v.Set("project_root", t.TempDir())
	v.Set("safe_address", "not-an-address")
	v.Set("rpc_url", "::::")
	v.Set("proposer_private_key", "zz")

	cfg, err := Provider(v)
	require.NoError(t, err)

	err = cfg.ValidateForProposal(v)
	require.Error(t, err)

	var cerr *domain.ConfigError
	require.ErrorAs(t, err, &cerr)

	byField := map[string]string{}
	for _, f := range cerr.Fields {
		byField[f.Field] = f.Reason
	}
	assert.Equal(t, "not a valid address", byField["safe_address"])
	assert.Equal(t, "not a valid URL", byField["rpc_url"])
	assert.Equal(t, "required", byField["proposer_address"])
	assert.Equal(t, "not a valid secp256k1 private key", byField["proposer_private_key"])
	assert.NotContains(t, err.Error(), "zz\"", "key material must not leak into errors")
}

func TestValidateForProposalAcceptsCompleteConfig(t *testing.T) {
	v := NewViper()
	v.Set("project_root", t.TempDir())
	v.Set("safe_address", "0x1111111111111111111111111111111111111111")
	v.Set("rpc_url", "https://sepolia.example.org")
	v.Set("proposer_address", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	v.Set("proposer_private_key", testPrivateKey)

	cfg, err := Provider(v)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateForProposal(v))
	require.NoError(t, cfg.ValidateForQuery(v))
}

func TestValidateForQueryRequiresSafeAddress(t *testing.T) {
	v := NewViper()
	v.Set("project_root", t.TempDir())

	cfg, err := Provider(v)
	require.NoError(t, err)

	err = cfg.ValidateForQuery(v)
	var cerr *domain.ConfigError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Fields, 1)
	assert.Equal(t, "safe_address", cerr.Fields[0].Field)
	assert.Equal(t, "required", cerr.Fields[0].Reason)
}

func TestFindProjectRootWalksUpToFoundryToml(t *testing.T) {
	root := writeFoundryProject(t, "")
	nested := filepath.Join(root, "script", "deploy")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	require.NoError(t, os.Chdir(nested))

	found, err := FindProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, resolveSymlinks(t, root), resolveSymlinks(t, found))
}

func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
