package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/usecase"
)

// RunRenderer renders the outcome of the script-to-proposal pipeline.
type RunRenderer struct {
	out io.Writer
}

func NewRunRenderer(out io.Writer) *RunRenderer {
	return &RunRenderer{out: out}
}

// Render prints the normalized transactions and, unless the run was a dry
// run, the Safe transaction hash each proposal received.
func (r *RunRenderer) Render(result *usecase.ExecuteResult) error {
	if !result.Script.OK() {
		fmt.Fprintln(r.out, color.New(color.FgYellow).Sprintf(
			"Script failed (%v); used the last broadcast artifact instead", result.Script.Err))
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false

	if result.DryRun {
		t.AppendHeader(table.Row{"#", "To", "Value", "Operation", "Data"})
		for i, in := range result.Inputs {
			t.AppendRow(table.Row{i + 1, in.To, in.Value, in.Operation.String(), truncate(in.Data, 42)})
		}
		t.Render()
		fmt.Fprintln(r.out, color.New(color.Faint).Sprint("Dry run: nothing was signed or proposed"))
		return nil
	}

	t.AppendHeader(table.Row{"#", "To", "Value", "Operation", "Safe Tx Hash"})
	for i, in := range result.Inputs {
		hash := ""
		if i < len(result.Hashes) {
			hash = result.Hashes[i].Hex()
		}
		t.AppendRow(table.Row{i + 1, in.To, in.Value, in.Operation.String(), hash})
	}
	t.Render()
	fmt.Fprintln(r.out, color.New(color.FgGreen).Sprintf(
		"Proposed %d transaction(s) on chain %d", len(result.Hashes), result.Script.ChainID))
	return nil
}
