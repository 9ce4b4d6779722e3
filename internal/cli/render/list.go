package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/adapters/safe"
	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

var (
	headerStyle   = color.New(color.Bold, color.FgHiWhite)
	executedStyle = color.New(color.FgGreen)
	pendingStyle  = color.New(color.FgYellow)
	faintStyle    = color.New(color.Faint)
)

// ListRenderer renders Safe overviews and transaction listings as tables.
type ListRenderer struct {
	out io.Writer
}

func NewListRenderer(out io.Writer) *ListRenderer {
	return &ListRenderer{out: out}
}

// RenderOverview prints the Safe's owners, threshold, and nonce.
func (r *ListRenderer) RenderOverview(overview *usecase.SafeOverview) {
	fmt.Fprintln(r.out, headerStyle.Sprintf("Safe %s", overview.Address.Hex()))
	fmt.Fprintf(r.out, "  Threshold: %d of %d owners\n", overview.Threshold, len(overview.Owners))
	fmt.Fprintf(r.out, "  Nonce:     %d\n", overview.Nonce)
	for _, owner := range overview.Owners {
		fmt.Fprintf(r.out, "    %s\n", faintStyle.Sprint(owner.Hex()))
	}
	fmt.Fprintln(r.out)
}

// RenderListing prints whichever view the listing holds.
func (r *ListRenderer) RenderListing(listing *usecase.Listing) error {
	switch listing.Kind {
	case usecase.ListPending, usecase.ListMultisig:
		return r.renderMultisig(listing.Multisig)
	case usecase.ListAll:
		return r.renderAll(listing.Any)
	case usecase.ListIncoming:
		return r.renderIncoming(listing.Incoming)
	case usecase.ListModule:
		return r.renderModule(listing.Module)
	}
	return fmt.Errorf("unknown listing kind %q", listing.Kind)
}

func (r *ListRenderer) renderMultisig(txs []safe.MultisigTransaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(r.out, "No transactions found")
		return nil
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Nonce", "To", "Value", "Confirmations", "Status", "Safe Tx Hash"})
	for _, tx := range txs {
		t.AppendRow(table.Row{
			tx.Nonce,
			tx.To,
			tx.Value,
			fmt.Sprintf("%d/%d", len(tx.Confirmations), tx.ConfirmationsRequired),
			r.executionStatus(tx),
			tx.SafeTxHash,
		})
	}
	t.Render()
	return nil
}

func (r *ListRenderer) renderAll(txs []safe.AnyTransaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(r.out, "No transactions found")
		return nil
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Type", "Nonce", "To", "Value", "Executed", "Hash"})
	for _, tx := range txs {
		nonce := ""
		if tx.Nonce != nil {
			nonce = fmt.Sprintf("%d", *tx.Nonce)
		}
		hash := tx.SafeTxHash
		if hash == "" && tx.TransactionHash != nil {
			hash = *tx.TransactionHash
		}
		t.AppendRow(table.Row{tx.TxType, nonce, tx.To, tx.Value, tx.IsExecuted, hash})
	}
	t.Render()
	return nil
}

func (r *ListRenderer) renderIncoming(transfers []safe.IncomingTransfer) error {
	if len(transfers) == 0 {
		fmt.Fprintln(r.out, "No incoming transfers found")
		return nil
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Type", "From", "Value", "Token", "Tx Hash"})
	for _, tr := range transfers {
		token := "native"
		if tr.TokenAddress != nil {
			token = *tr.TokenAddress
		}
		t.AppendRow(table.Row{tr.Type, tr.From, tr.Value, token, tr.TransactionHash})
	}
	t.Render()
	return nil
}

func (r *ListRenderer) renderModule(txs []safe.ModuleTransaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(r.out, "No module transactions found")
		return nil
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Module", "To", "Value", "Success", "Tx Hash"})
	for _, tx := range txs {
		t.AppendRow(table.Row{tx.Module, tx.To, tx.Value, tx.IsSuccessful, tx.TransactionHash})
	}
	t.Render()
	return nil
}

// RenderTransaction prints a single proposal's confirmation status.
func (r *ListRenderer) RenderTransaction(tx *safe.MultisigTransaction) error {
	fmt.Fprintln(r.out, headerStyle.Sprintf("Transaction %s", tx.SafeTxHash))
	fmt.Fprintf(r.out, "  Safe:          %s\n", tx.Safe)
	fmt.Fprintf(r.out, "  Nonce:         %d\n", tx.Nonce)
	fmt.Fprintf(r.out, "  To:            %s\n", tx.To)
	fmt.Fprintf(r.out, "  Value:         %s\n", tx.Value)
	if tx.Data != nil && *tx.Data != "" {
		fmt.Fprintf(r.out, "  Data:          %s\n", truncate(*tx.Data, 66))
	}
	fmt.Fprintf(r.out, "  Status:        %s\n", r.executionStatus(*tx))
	fmt.Fprintf(r.out, "  Confirmations: %d/%d\n", len(tx.Confirmations), tx.ConfirmationsRequired)
	for _, c := range tx.Confirmations {
		fmt.Fprintf(r.out, "    %s %s\n", faintStyle.Sprint(c.Owner), faintStyle.Sprint(c.SubmissionDate.Format("2006-01-02 15:04")))
	}
	return nil
}

func (r *ListRenderer) executionStatus(tx safe.MultisigTransaction) string {
	if tx.IsExecuted {
		if tx.IsSuccessful != nil && !*tx.IsSuccessful {
			return color.New(color.FgRed).Sprint("failed")
		}
		return executedStyle.Sprint("executed")
	}
	return pendingStyle.Sprint("pending")
}

func (r *ListRenderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	return t
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "…"
}
