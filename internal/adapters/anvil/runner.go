package anvil

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// readyMarker is the stdout line anvil prints once its RPC endpoint accepts
// connections. Output before that point is informational only.
const readyMarker = "Listening on"

// Runner owns at most one anvil fork process per run. It is not safe for
// concurrent use; the pipeline is strictly sequential.
type Runner struct {
	log *slog.Logger

	// command is the binary spawned for the fork. Tests substitute a
	// stand-in script.
	command string
	cmd     *exec.Cmd
	config  domain.ForkConfig
}

// NewRunner creates a fork runner.
func NewRunner(log *slog.Logger) *Runner {
	return &Runner{
		log:     log.With("component", "ForkRunner"),
		command: "anvil",
	}
}

// ShouldStartFork decides whether a fork is wanted for the given RPC target.
// Never fork when explicitly skipped, and never fork a chain that is already
// local: forking a fork only adds latency and confusion.
func ShouldStartFork(rpcURL string, skip bool) bool {
	if skip {
		return false
	}
	for _, local := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		if strings.Contains(rpcURL, local) {
			return false
		}
	}
	return true
}

// Start launches anvil forking cfg.ForkURL and waits for the ready marker.
// On timeout or premature exit the process is killed and a ForkStartupError
// is returned.
func (r *Runner) Start(ctx context.Context, cfg domain.ForkConfig) error {
	if r.cmd != nil {
		return fmt.Errorf("fork already running (pid %d)", r.cmd.Process.Pid)
	}
	cfg = cfg.WithDefaults()

	args := buildAnvilArgs(cfg)
	r.log.Info("starting anvil fork", "args", args)

	cmd := exec.Command(r.command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &domain.ForkStartupError{Reason: fmt.Sprintf("failed to open stdout pipe: %v", err)}
	}
	cmd.Stderr = cmd.Stdout // fold stderr into the same stream we scan

	if err := cmd.Start(); err != nil {
		return &domain.ForkStartupError{Reason: fmt.Sprintf("failed to spawn anvil: %v", err)}
	}

	ready := make(chan struct{})
	exited := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(stdout)
		marked := false
		for scanner.Scan() {
			line := scanner.Text()
			r.log.Debug("anvil", "line", line)
			if !marked && strings.Contains(line, readyMarker) {
				marked = true
				close(ready)
			}
		}
		// Keep draining until the pipe closes so the child never blocks on a
		// full stdout buffer.
	}()
	go func() {
		exited <- cmd.Wait()
	}()

	select {
	case <-ready:
		r.cmd = cmd
		r.config = cfg
		r.log.Info("anvil fork ready", "pid", cmd.Process.Pid, "rpc", r.LocalRPCURL())
		return nil
	case err := <-exited:
		return &domain.ForkStartupError{Reason: fmt.Sprintf("anvil exited before startup: %v", err)}
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		return &domain.ForkStartupError{Reason: fmt.Sprintf("canceled while waiting for startup: %v", ctx.Err())}
	case <-time.After(cfg.StartupTimeout):
		_ = cmd.Process.Kill()
		return &domain.ForkStartupError{Reason: fmt.Sprintf("no %q marker within %s", readyMarker, cfg.StartupTimeout)}
	}
}

// Stop terminates the fork if one is running. Safe to call when not running.
func (r *Runner) Stop() error {
	if r.cmd == nil {
		return nil
	}
	pid := r.cmd.Process.Pid
	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		_ = r.cmd.Process.Kill()
	}
	r.log.Info("anvil fork stopped", "pid", pid)
	r.cmd = nil
	r.config = domain.ForkConfig{}
	return nil
}

// StopOnError is Stop for failure paths; separated so call sites read as
// cleanup rather than success teardown.
func (r *Runner) StopOnError() {
	_ = r.Stop()
}

// IsRunning reports whether a fork process is active.
func (r *Runner) IsRunning() bool {
	return r.cmd != nil
}

// LocalRPCURL is the endpoint downstream tooling must target while the fork
// is running. The 0.0.0.0 bind address is rewritten to localhost for
// client connectivity.
func (r *Runner) LocalRPCURL() string {
	host := r.config.Host
	if host == "" || host == domain.DefaultForkHost {
		host = "localhost"
	}
	port := r.config.Port
	if port == "" {
		port = domain.DefaultForkPort
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// Status reports the fork process state.
func (r *Runner) Status() domain.ForkStatus {
	if r.cmd == nil {
		return domain.ForkStatus{}
	}
	return domain.ForkStatus{
		Running: true,
		PID:     r.cmd.Process.Pid,
		RPCURL:  r.LocalRPCURL(),
	}
}

func buildAnvilArgs(cfg domain.ForkConfig) []string {
	return []string{
		"--fork-url", cfg.ForkURL,
		"--host", cfg.Host,
		"--port", cfg.Port,
		"--accounts", strconv.Itoa(cfg.Accounts),
		"--balance", strconv.Itoa(cfg.Balance),
	}
}
