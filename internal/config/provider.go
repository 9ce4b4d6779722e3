package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// NewViper builds the viper instance the CLI binds its flags into.
// Every key is also settable through the environment with a SAFEPROP_
// prefix, e.g. SAFEPROP_SAFE_ADDRESS.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SAFEPROP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Provider creates RuntimeConfig for Wire dependency injection.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// foundry.toml loading also loads .env files, so it must run before
	// the env-backed keys below are read.
	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:        projectRoot,
		RPCURL:             v.GetString("rpc_url"),
		ChainID:            v.GetUint64("chain_id"),
		ServiceURL:         v.GetString("service_url"),
		APIKey:             v.GetString("api_key"),
		ProposerPrivateKey: v.GetString("proposer_private_key"),
		SkipFork:           v.GetBool("skip_fork"),
		SkipOwnerCheck:     v.GetBool("skip_owner_check"),
		DryRun:             v.GetBool("dry_run"),
		NonInteractive:     v.GetBool("non_interactive"),
		Debug:              v.GetBool("debug"),
		ProposalDelay:      v.GetDuration("proposal_delay"),
		FoundryConfig:      foundryConfig,
	}

	// Addresses are kept as typed values; malformed input is reported by
	// the validation pass so all problems surface together.
	if raw := v.GetString("safe_address"); common.IsHexAddress(raw) {
		cfg.SafeAddress = common.HexToAddress(raw)
	}
	if raw := v.GetString("proposer_address"); common.IsHexAddress(raw) {
		cfg.ProposerAddress = common.HexToAddress(raw)
	}

	// A network alias from foundry.toml is accepted in place of a URL.
	if cfg.RPCURL != "" && !strings.Contains(cfg.RPCURL, "://") {
		if resolved, ok := foundryConfig.ResolveRPCURL(cfg.RPCURL); ok {
			cfg.RPCURL = resolved
		}
	}

	return cfg, nil
}

// ValidateForQuery checks the fields the read-only commands need. All
// offending fields are reported in one error.
func (c *RuntimeConfig) ValidateForQuery(v *viper.Viper) error {
	var fields []domain.FieldError
	fields = append(fields, c.safeAddressErrors(v)...)
	if len(fields) > 0 {
		return &domain.ConfigError{Fields: fields}
	}
	return nil
}

// ValidateForProposal checks everything the signing pipeline needs.
func (c *RuntimeConfig) ValidateForProposal(v *viper.Viper) error {
	var fields []domain.FieldError

	fields = append(fields, c.safeAddressErrors(v)...)

	switch {
	case c.RPCURL == "":
		fields = append(fields, domain.FieldError{Field: "rpc_url", Reason: "required"})
	default:
		if u, err := url.Parse(c.RPCURL); err != nil || u.Scheme == "" || u.Host == "" {
			fields = append(fields, domain.FieldError{Field: "rpc_url", Reason: "not a valid URL"})
		}
	}

	if raw := v.GetString("proposer_address"); raw == "" {
		fields = append(fields, domain.FieldError{Field: "proposer_address", Reason: "required"})
	} else if !common.IsHexAddress(raw) {
		fields = append(fields, domain.FieldError{Field: "proposer_address", Reason: "not a valid address"})
	}

	// The key value never appears in an error.
	switch key := strings.TrimPrefix(c.ProposerPrivateKey, "0x"); {
	case key == "":
		fields = append(fields, domain.FieldError{Field: "proposer_private_key", Reason: "required"})
	default:
		if _, err := crypto.HexToECDSA(key); err != nil {
			fields = append(fields, domain.FieldError{Field: "proposer_private_key", Reason: "not a valid secp256k1 private key"})
		}
	}

	if len(fields) > 0 {
		return &domain.ConfigError{Fields: fields}
	}
	return nil
}

func (c *RuntimeConfig) safeAddressErrors(v *viper.Viper) []domain.FieldError {
	raw := v.GetString("safe_address")
	switch {
	case raw == "":
		return []domain.FieldError{{Field: "safe_address", Reason: "required"}}
	case !common.IsHexAddress(raw):
		return []domain.FieldError{{Field: "safe_address", Reason: "not a valid address"}}
	}
	return nil
}
