package interactive

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/gfournieriExec/multisig-automate-proposer/internal/config"
)

// Confirmer asks yes/no questions on the terminal.
type Confirmer struct {
	config *config.RuntimeConfig
}

func NewConfirmer(cfg *config.RuntimeConfig) *Confirmer {
	return &Confirmer{config: cfg}
}

// Confirm prompts the operator. In non-interactive mode no prompt is
// shown and the answer is no: unattended runs must opt in explicitly
// with --yes.
func (c *Confirmer) Confirm(prompt string) (bool, error) {
	if c.config.NonInteractive {
		return false, fmt.Errorf("confirmation required for %q: re-run with --yes in non-interactive mode", prompt)
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	_, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
