package cli

import (
	"github.com/spf13/cobra"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/cli/render"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// NewListCmd creates the list command for Safe transaction views.
func NewListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Safe transactions and metadata",
		Long: `List transactions tracked by the Safe transaction service, together
with the Safe's owners, threshold, and current nonce.

Examples:
  safeprop list
  safeprop list --kind all
  safeprop list --kind incoming`,
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
			if err := a.Config.ValidateForQuery(v); err != nil {
				return err
			}

			listKind, err := usecase.ParseListKind(kind)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			overview, err := a.ListSafeTransactions.Overview(ctx)
			if err != nil {
				return err
			}
			listing, err := a.ListSafeTransactions.List(ctx, listKind)
			if err != nil {
				return err
			}

			renderer := render.NewListRenderer(cmd.OutOrStdout())
			renderer.RenderOverview(overview)
			return renderer.RenderListing(listing)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "pending", "Which view to list: pending, all, incoming, multisig, module")

	return cmd
}
