package cmd

import (
	"fmt"

	"github.com/go-drift/loom/pkg/style"
)

func init() {
	RegisterCommand(&Command{
		Name:  "sheet",
		Short: "Validate YAML stylesheets",
		Long: `Validate one or more YAML stylesheets.

Each file is parsed with the same loader the view layer uses at runtime.
Malformed attributes and selectors print diagnostics; a structurally
malformed document fails the command.`,
		Usage: "loom sheet <file>...",
		Run:   runSheet,
	})
}

func runSheet(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sheet requires at least one file")
	}
	for _, path := range args {
		sheet, err := style.LoadSheetFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d style set(s)\n", path, len(sheet))
		for name, set := range sheet {
			fmt.Printf("  %-20s depth=%d", name, set.Depth())
			if set.UsesHover() {
				fmt.Print(" hover")
			}
			if set.UsesFocus() {
				fmt.Print(" focus")
			}
			fmt.Println()
		}
	}
	return nil
}
