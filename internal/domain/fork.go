package domain

import "time"

// ForkConfig describes a local anvil fork of a remote chain.
type ForkConfig struct {
	// ForkURL is the remote RPC the fork mirrors.
	ForkURL string
	// Host/Port the fork binds to. Defaults 0.0.0.0:8545.
	Host string
	Port string
	// Accounts and Balance seed the fork's unlocked accounts.
	Accounts int
	Balance  int
	// StartupTimeout bounds how long we wait for the ready marker.
	StartupTimeout time.Duration
}

const (
	DefaultForkHost     = "0.0.0.0"
	DefaultForkPort     = "8545"
	DefaultForkAccounts = 10
	DefaultForkBalance  = 10000

	// DefaultForkStartupTimeout is how long anvil gets to print its ready
	// marker before being killed.
	DefaultForkStartupTimeout = 30 * time.Second
)

// WithDefaults fills unset fields.
func (c ForkConfig) WithDefaults() ForkConfig {
	if c.Host == "" {
		c.Host = DefaultForkHost
	}
	if c.Port == "" {
		c.Port = DefaultForkPort
	}
	if c.Accounts == 0 {
		c.Accounts = DefaultForkAccounts
	}
	if c.Balance == 0 {
		c.Balance = DefaultForkBalance
	}
	if c.StartupTimeout == 0 {
		c.StartupTimeout = DefaultForkStartupTimeout
	}
	return c
}

// ForkStatus reports the state of the managed fork process.
type ForkStatus struct {
	Running bool
	PID     int
	RPCURL  string
}
