package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/cli/render"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// NewForkCmd creates the fork command group.
func NewForkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fork",
		Short: "Manage a local fork of the target network",
		Long: `Run a local anvil fork of the target network for manual testing.

The fork lives for the duration of the command: interrupt it (Ctrl-C) to
tear the fork down.`,
	}

	cmd.AddCommand(newForkStartCmd())
	cmd.AddCommand(newForkStatusCmd())
	return cmd
}

func newForkStartCmd() *cobra.Command {
	var (
		host     string
		port     string
		accounts int
		balance  int
	)

	cmd := &cobra.Command{
		Use:          "start",
		Short:        "Start an anvil fork of the configured RPC endpoint",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			if a.Config.RPCURL == "" {
				return fmt.Errorf("--rpc-url (or SAFEPROP_RPC_URL) is required to start a fork")
			}

			status, err := a.ManageFork.Start(cmd.Context(), domain.ForkConfig{
				ForkURL:  a.Config.RPCURL,
				Host:     host,
				Port:     port,
				Accounts: accounts,
				Balance:  balance,
			})
			if err != nil {
				return err
			}
			if err := render.NewForkRenderer(cmd.OutOrStdout()).RenderStatus(status); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop the fork")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return a.ManageFork.Stop()
		},
	}

	cmd.Flags().StringVar(&host, "host", domain.DefaultForkHost, "Host address to bind the fork to")
	cmd.Flags().StringVar(&port, "port", domain.DefaultForkPort, "Port to bind the fork to")
	cmd.Flags().IntVar(&accounts, "accounts", domain.DefaultForkAccounts, "Number of dev accounts to seed")
	cmd.Flags().IntVar(&balance, "balance", domain.DefaultForkBalance, "Starting balance of each dev account (ether)")

	return cmd
}

func newForkStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show whether a fork started by this process is running",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			return render.NewForkRenderer(cmd.OutOrStdout()).RenderStatus(a.ManageFork.Status())
		},
	}
}
