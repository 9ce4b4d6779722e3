package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// Reader loads Foundry broadcast artifacts from a project root.
type Reader struct {
	log          *slog.Logger
	projectRoot  string
	broadcastDir string
}

// NewReader creates a broadcast reader rooted at the Foundry project.
// broadcastDir is foundry's broadcast output directory relative to the
// root; empty means the default "broadcast".
func NewReader(projectRoot, broadcastDir string, log *slog.Logger) *Reader {
	if broadcastDir == "" {
		broadcastDir = "broadcast"
	}
	return &Reader{
		log:          log.With("component", "BroadcastReader"),
		projectRoot:  projectRoot,
		broadcastDir: broadcastDir,
	}
}

// LatestBroadcastPath returns the run-latest.json path for a script and
// chain. scriptName may be given with or without the .s.sol suffix.
func (r *Reader) LatestBroadcastPath(scriptName string, chainID uint64) string {
	name := filepath.Base(scriptName)
	if !strings.HasSuffix(name, ".s.sol") {
		name = strings.TrimSuffix(name, ".sol") + ".s.sol"
	}
	return filepath.Join(r.projectRoot, r.broadcastDir, name, fmt.Sprintf("%d", chainID), "run-latest.json")
}

// ReadBroadcast loads the latest broadcast for (scriptName, chainID) and
// returns its CALL entries in original order. Contract deployments and other
// entry types are dropped: only direct calls are safe to replay through the
// multisig.
func (r *Reader) ReadBroadcast(scriptName string, chainID uint64) ([]domain.BroadcastTransaction, error) {
	file, err := r.ParseLatestBroadcast(scriptName, chainID)
	if err != nil {
		return nil, err
	}

	calls := lo.Filter(file.Transactions, func(tx domain.BroadcastTransaction, _ int) bool {
		return tx.IsCall()
	})
	r.log.Debug("loaded broadcast",
		"script", scriptName,
		"chainId", chainID,
		"total", len(file.Transactions),
		"calls", len(calls))
	return calls, nil
}

// ParseLatestBroadcast parses the whole run-latest.json for a script and
// chain without filtering.
func (r *Reader) ParseLatestBroadcast(scriptName string, chainID uint64) (*domain.BroadcastFile, error) {
	path := r.LatestBroadcastPath(scriptName, chainID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("broadcast file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read broadcast file %s: %w", path, err)
	}

	var file domain.BroadcastFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid broadcast artifact %s: %w", path, err)
	}
	return &file, nil
}
