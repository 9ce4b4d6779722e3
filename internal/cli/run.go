package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/cli/render"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// NewRunCmd creates the run command: script execution to Safe proposals.
func NewRunCmd() *cobra.Command {
	var (
		contractName   string
		envVars        []string
		extraArgs      []string
		dryRun         bool
		skipFork       bool
		skipOwnerCheck bool
		yes            bool
	)

	cmd := &cobra.Command{
		Use:   "run <script-file>",
		Short: "Run a Foundry script and propose its calls to the Safe",
		Long: `Run a Foundry script and propose every call it broadcasts to the Safe.

Unless the RPC endpoint is already local, an anvil fork of the target
network is started first and the script runs against the fork, so the real
chain is never touched by the script itself. The calls recorded in the
broadcast artifact are then proposed to the Safe transaction service with
sequential nonces.

Examples:
  # Propose the calls of a configuration script
  safeprop run script/ConfigureOracle.s.sol

  # Only print the transactions that would be proposed
  safeprop run script/ConfigureOracle.s.sol --dry-run

  # Pass extra arguments through to forge
  safeprop run script/ConfigureOracle.s.sol --forge-args "--skip-simulation"`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			v, err := getViper(cmd)
			if err != nil {
				return err
			}
			dryRun := dryRun || a.Config.DryRun

			// A dry run still forks and executes the script, so it needs
			// an RPC endpoint, just not the signing configuration.
			if dryRun {
				if a.Config.RPCURL == "" {
					return fmt.Errorf("--rpc-url (or SAFEPROP_RPC_URL) is required")
				}
			} else if err := a.Config.ValidateForProposal(v); err != nil {
				return err
			}

			env := make(map[string]string, len(envVars))
			for _, kv := range envVars {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid env var format: %s (expected key=value)", kv)
				}
				env[parts[0]] = parts[1]
			}

			result, err := a.ExecuteFromScript.Run(cmd.Context(), usecase.ExecuteParams{
				ScriptPath:     args[0],
				ContractName:   contractName,
				RPCURL:         a.Config.RPCURL,
				ChainID:        a.Config.ChainID,
				ExtraArgs:      extraArgs,
				Env:            env,
				SkipFork:       skipFork || a.Config.SkipFork,
				SkipOwnerCheck: skipOwnerCheck || a.Config.SkipOwnerCheck,
				DryRun:         dryRun,
				AutoConfirm:    yes,
			})
			if err != nil {
				return err
			}
			return render.NewRunRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Contract name inside the script file (default: derived from the filename)")
	cmd.Flags().StringArrayVar(&envVars, "env", nil, "Environment overrides for the script (key=value, repeatable)")
	cmd.Flags().StringSliceVar(&extraArgs, "forge-args", nil, "Extra arguments passed through to forge script")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the normalized transactions without signing or proposing")
	cmd.Flags().BoolVar(&skipFork, "skip-fork", false, "Run the script against the real RPC endpoint instead of a fork")
	cmd.Flags().BoolVar(&skipOwnerCheck, "skip-owner-check", false, "Do not verify that the proposer is a Safe owner before proposing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Propose without asking for confirmation")

	return cmd
}
