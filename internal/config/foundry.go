package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// foundryTOML is the raw foundry.toml structure.
type foundryTOML struct {
	RPCEndpoints map[string]string         `toml:"rpc_endpoints"`
	Profile      map[string]foundryProfile `toml:"profile"`
}

type foundryProfile struct {
	Broadcast string `toml:"broadcast"`
}

// loadFoundryConfig loads .env files and foundry.toml from the project
// root. A missing foundry.toml is not an error: the tool can run against
// a plain broadcast directory.
func loadFoundryConfig(projectRoot string) (*FoundryConfig, error) {
	for _, envFile := range []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	} {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
			}
		}
	}

	cfg := &FoundryConfig{
		RPCEndpoints: make(map[string]string),
		BroadcastDir: "broadcast",
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw foundryTOML
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range raw.RPCEndpoints {
		cfg.RPCEndpoints[name] = os.ExpandEnv(url)
	}
	if profile, ok := raw.Profile["default"]; ok && profile.Broadcast != "" {
		cfg.BroadcastDir = profile.Broadcast
	}
	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the nearest
// directory containing foundry.toml, falling back to the working
// directory itself.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for probe := dir; ; {
		if _, err := os.Stat(filepath.Join(probe, "foundry.toml")); err == nil {
			return probe, nil
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return dir, nil
		}
		probe = parent
	}
}
