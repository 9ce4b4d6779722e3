package render

import (
	"fmt"
	"io"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/domain"
)

// ForkRenderer renders fork lifecycle results.
type ForkRenderer struct {
	out io.Writer
}

func NewForkRenderer(out io.Writer) *ForkRenderer {
	return &ForkRenderer{out: out}
}

// RenderStatus prints the fork process state.
func (r *ForkRenderer) RenderStatus(status domain.ForkStatus) error {
	if !status.Running {
		fmt.Fprintln(r.out, "No fork is running")
		return nil
	}
	fmt.Fprintln(r.out, "Fork running")
	fmt.Fprintf(r.out, "  RPC URL: %s\n", status.RPCURL)
	fmt.Fprintf(r.out, "  PID:     %d\n", status.PID)
	return nil
}
