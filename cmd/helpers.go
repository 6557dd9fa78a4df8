package cmd

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v2"
)

// confirmProductionTarget asks for confirmation before the pipeline mutates a
// database whose name looks like production.
func confirmProductionTarget(database string, force bool, stdin io.ReadCloser) error {
	if force || !strings.Contains(strings.ToLower(database), "prod") {
		return nil
	}

	prompt := promptui.Prompt{
		Label:     "You are targeting a production database. Are you sure you want to continue?",
		IsConfirm: true,
		Stdin:     stdin,
	}

	if _, err := prompt.Run(); err != nil {
		infoPrinter.Println("The operation is cancelled.")
		return cli.Exit("", 1)
	}

	return nil
}
