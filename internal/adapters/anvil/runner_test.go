package anvil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

func TestShouldStartFork(t *testing.T) {
	tests := []struct {
		name   string
		rpcURL string
		skip   bool
		want   bool
	}{
		{"remote url", "https://sepolia.infura.io/v3/key", false, true},
		{"remote url skipped", "https://sepolia.infura.io/v3/key", true, false},
		{"localhost", "http://localhost:8545", false, false},
		{"loopback ip", "http://127.0.0.1:8545", false, false},
		{"bind-all host", "http://0.0.0.0:8545", false, false},
		{"localhost with path", "http://localhost:8545/rpc", false, false},
		{"empty url", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldStartFork(tt.rpcURL, tt.skip))
		})
	}
}

func TestBuildAnvilArgs(t *testing.T) {
	cfg := domain.ForkConfig{ForkURL: "https://rpc.sepolia.org"}.WithDefaults()
	args := buildAnvilArgs(cfg)
	assert.Equal(t, []string{
		"--fork-url", "https://rpc.sepolia.org",
		"--host", "0.0.0.0",
		"--port", "8545",
		"--accounts", "10",
		"--balance", "10000",
	}, args)
}

func TestBuildAnvilArgs_CustomSeed(t *testing.T) {
	cfg := domain.ForkConfig{
		ForkURL:  "https://rpc.sepolia.org",
		Port:     "9000",
		Accounts: 3,
		Balance:  50,
	}.WithDefaults()
	args := buildAnvilArgs(cfg)
	assert.Contains(t, args, "9000")
	assert.Contains(t, args, "3")
	assert.Contains(t, args, "50")
}

func TestLocalRPCURL_RewritesBindAllHost(t *testing.T) {
	r := NewRunner(slog.New(slog.DiscardHandler))
	r.config = domain.ForkConfig{Host: "0.0.0.0", Port: "8545"}
	assert.Equal(t, "http://localhost:8545", r.LocalRPCURL())

	r.config = domain.ForkConfig{Host: "192.168.1.10", Port: "9000"}
	assert.Equal(t, "http://192.168.1.10:9000", r.LocalRPCURL())
}

func TestStop_NoopWhenNotRunning(t *testing.T) {
	r := NewRunner(slog.New(slog.DiscardHandler))
	assert.False(t, r.IsRunning())
	assert.NoError(t, r.Stop())
	r.StopOnError()
	assert.False(t, r.Status().Running)
}

// newFakeRunner swaps the anvil binary for a shell script so the startup
// protocol can be exercised without foundry installed.
func newFakeRunner(t *testing.T, script string) *Runner {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anvil")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	r := NewRunner(slog.New(slog.DiscardHandler))
	r.command = path
	return r
}

func TestStart_ReadyOnMarker(t *testing.T) {
	r := newFakeRunner(t, "echo 'Listening on 127.0.0.1:8545'\nexec sleep 30\n")
	t.Cleanup(func() { _ = r.Stop() })

	err := r.Start(context.Background(), domain.ForkConfig{ForkURL: "https://rpc.sepolia.org"})
	require.NoError(t, err)
	assert.True(t, r.IsRunning())
	assert.NotZero(t, r.Status().PID)
	assert.Equal(t, "http://localhost:8545", r.Status().RPCURL)

	require.NoError(t, r.Stop())
	assert.False(t, r.IsRunning())
}

func TestStart_FailsWhenProcessExitsBeforeMarker(t *testing.T) {
	r := newFakeRunner(t, "echo 'error: could not fork'\nexit 1\n")

	err := r.Start(context.Background(), domain.ForkConfig{ForkURL: "https://rpc.sepolia.org"})
	require.Error(t, err)
	var startErr *domain.ForkStartupError
	require.ErrorAs(t, err, &startErr)
	assert.Contains(t, err.Error(), "exited before startup")
	assert.False(t, r.IsRunning())
}

func TestStart_TimeoutKillsSilentProcess(t *testing.T) {
	r := newFakeRunner(t, "exec sleep 30\n")

	err := r.Start(context.Background(), domain.ForkConfig{
		ForkURL:        "https://rpc.sepolia.org",
		StartupTimeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	var startErr *domain.ForkStartupError
	require.ErrorAs(t, err, &startErr)
	assert.Contains(t, err.Error(), "Listening on")
	assert.False(t, r.IsRunning())
}

func TestStart_RejectsSecondFork(t *testing.T) {
	r := newFakeRunner(t, "echo 'Listening on 127.0.0.1:8545'\nexec sleep 30\n")
	t.Cleanup(func() { _ = r.Stop() })

	cfg := domain.ForkConfig{ForkURL: "https://rpc.sepolia.org"}
	require.NoError(t, r.Start(context.Background(), cfg))
	err := r.Start(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
