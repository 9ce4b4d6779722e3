package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/progress"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/app"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/config"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// viperKey is the context key for the viper instance
	viperKey contextKey = "viper"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safeprop",
		Short: "Propose Foundry script transactions to a Gnosis Safe",
		Long: `safeprop turns the calls recorded by a Foundry script run into Gnosis Safe
proposals. It forks the target network, runs the script against the fork,
reads the broadcast artifact, and proposes every recorded call to the Safe
transaction service with sequential nonces, signed by a proposer key.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.NewViper()
			bindGlobalFlags(v, cmd)

			var sink usecase.ProgressSink = progress.NewSpinnerSink()
			if v.GetBool("non_interactive") {
				sink = progress.NopSink{}
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, viperKey, v)
			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("project-root", "", "Foundry project root (default: nearest foundry.toml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint URL or foundry.toml network alias")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Chain id of the target network")
	rootCmd.PersistentFlags().String("safe-address", "", "Address of the Safe to propose to")
	rootCmd.PersistentFlags().String("service-url", "", "Safe transaction service URL override")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewForkCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// flagKeys maps flag names to their viper keys.
var flagKeys = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"project-root":    "project_root",
	"rpc-url":         "rpc_url",
	"chain-id":        "chain_id",
	"safe-address":    "safe_address",
	"service-url":     "service_url",
	"dry-run":         "dry_run",
	"skip-fork":       "skip_fork",
}

// bindGlobalFlags copies changed flags into viper so they take precedence
// over environment variables.
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	bind := func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	}
	cmd.Flags().Visit(bind)
	cmd.InheritedFlags().Visit(bind)
}

// getApp retrieves the app instance from the command context.
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}
	return a, nil
}

// getViper retrieves the viper instance used to build the app.
func getViper(cmd *cobra.Command) (*viper.Viper, error) {
	value := cmd.Context().Value(viperKey)
	v, ok := value.(*viper.Viper)
	if !ok {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return v, nil
}
