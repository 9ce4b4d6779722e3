package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/cli/render"
)

// NewStatusCmd creates the status command: look up one proposal by hash.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "status <safe-tx-hash>",
		Short:        "Show the confirmation status of a proposed transaction",
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
			if err := a.Config.ValidateForQuery(v); err != nil {
				return err
			}

			hash, err := parseSafeTxHash(args[0])
			if err != nil {
				return err
			}

			tx, err := a.ListSafeTransactions.Status(cmd.Context(), hash)
			if err != nil {
				return err
			}
			return render.NewListRenderer(cmd.OutOrStdout()).RenderTransaction(tx)
		},
	}
	return cmd
}

// parseSafeTxHash validates a user-supplied transaction hash strictly.
// common.HexToHash zero-fills anything that is not hex, which would turn a
// typo into a lookup for a hash that never existed.
func parseSafeTxHash(raw string) (common.Hash, error) {
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid safe transaction hash: %s", raw)
	}
	return common.BytesToHash(b), nil
}
