package forge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// RunConfig describes one forge script invocation.
type RunConfig struct {
	// ScriptPath is the path to the .s.sol file.
	ScriptPath string
	// ContractName is the script contract; derived from the filename when
	// empty.
	ContractName string
	// RPCURL is the endpoint forge broadcasts against (fork-local when a
	// fork is active).
	RPCURL string
	// ExtraArgs are passed through to forge verbatim.
	ExtraArgs []string
	// Env holds KEY=VALUE overrides appended to the parent environment.
	Env map[string]string
}

// Runner executes forge scripts with streamed output.
type Runner struct {
	log         *slog.Logger
	projectRoot string
	stdout      io.Writer
}

// NewRunner creates a forge script runner rooted at the Foundry project.
func NewRunner(projectRoot string, log *slog.Logger) *Runner {
	return &Runner{
		log:         log.With("component", "ForgeRunner"),
		projectRoot: projectRoot,
		stdout:      os.Stdout,
	}
}

// Run executes the script, streaming forge output to the operator's
// console, and returns the network's chain id on success. A non-zero exit
// yields a ScriptExecutionError carrying the exit code.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (uint64, error) {
	contract := cfg.ContractName
	if contract == "" {
		contract = DefaultContractName(cfg.ScriptPath)
	}

	args := buildScriptArgs(cfg.ScriptPath, contract, cfg.RPCURL, cfg.ExtraArgs)
	r.log.Info("running forge script", "script", cfg.ScriptPath, "contract", contract, "rpc", redactURL(cfg.RPCURL))
	r.log.Debug("forge args", "args", args)

	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = r.projectRoot
	cmd.Env = append(os.Environ(), flattenEnv(cfg.Env)...)

	// PTY keeps forge's colored progress output intact while we stream it
	// straight through; nothing is buffered or parsed.
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return 0, fmt.Errorf("failed to start forge: %w", err)
	}
	defer func() { _ = ptyFile.Close() }()

	_, _ = io.Copy(r.stdout, ptyFile)

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return 0, &domain.ScriptExecutionError{Script: cfg.ScriptPath, ExitCode: exitCode}
	}

	return ResolveChainID(ctx, cfg.RPCURL, r.log)
}

// DefaultContractName derives the script contract name from its filename:
// script/MyDeploy.s.sol -> MyDeploy.
func DefaultContractName(scriptPath string) string {
	name := filepath.Base(scriptPath)
	name = strings.TrimSuffix(name, ".sol")
	name = strings.TrimSuffix(name, ".s")
	return name
}

func buildScriptArgs(scriptPath, contract, rpcURL string, extra []string) []string {
	args := []string{"script", fmt.Sprintf("%s:%s", scriptPath, contract)}
	args = append(args, "--rpc-url", rpcURL, "--broadcast")
	args = append(args, extra...)
	return args
}

func flattenEnv(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	return out
}
