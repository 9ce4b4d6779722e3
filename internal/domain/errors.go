package domain

import (
	"fmt"
	"strings"
)

// ConfigError reports invalid or missing configuration. It is fatal and
// never retried. Fields collects every offending setting so the operator
// sees the full list in one pass.
type ConfigError struct {
	Fields []FieldError
}

// FieldError describes a single rejected configuration or input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid configuration"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(parts, "; "))
}

// ValidationError reports a malformed transaction field. Fatal for the
// offending item; the caller decides whether the batch survives.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NetworkError reports that an RPC endpoint or the Safe transaction service
// could not be reached. Some call sites retry with fresh state; the rest
// propagate.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NonceConflictError is returned by the Safe service client when a proposal
// is rejected because its nonce is already used. The submission engine uses
// it to decide between a single bounded retry and propagation.
type NonceConflictError struct {
	Nonce  uint64
	Detail string
}

func (e *NonceConflictError) Error() string {
	return fmt.Sprintf("nonce %d already used: %s", e.Nonce, e.Detail)
}

// SafeTransactionError reports a signing or proposal failure that is not a
// nonce conflict. Fatal.
type SafeTransactionError struct {
	SafeTxHash string
	Nonce      uint64
	Detail     string
}

func (e *SafeTransactionError) Error() string {
	if e.SafeTxHash != "" {
		return fmt.Sprintf("safe transaction %s (nonce %d) failed: %s", e.SafeTxHash, e.Nonce, e.Detail)
	}
	return fmt.Sprintf("safe transaction (nonce %d) failed: %s", e.Nonce, e.Detail)
}

// ScriptExecutionError reports a non-zero exit from forge. The pipeline
// treats it as a tagged phase-one failure and falls back to any existing
// broadcast artifact before giving up.
type ScriptExecutionError struct {
	Script   string
	ExitCode int
}

func (e *ScriptExecutionError) Error() string {
	return fmt.Sprintf("script %s failed with exit code %d", e.Script, e.ExitCode)
}

// ForkStartupError reports that the local fork process never reached its
// ready state.
type ForkStartupError struct {
	Reason string
}

func (e *ForkStartupError) Error() string {
	return fmt.Sprintf("fork startup failed: %s", e.Reason)
}
