package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var rmCmd = &cobra.Command{
	Use:   "rm <file> <path>",
	Short: "Destroy an element and everything beneath it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		parent, name, err := navigateToParent(root, args[1], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[1], err)
		}
		if name == "" {
			return fmt.Errorf("rm: cannot remove the root storage")
		}

		if err := parent.DestroyElement(name); err != nil {
			return fmt.Errorf("rm %s: %w", args[1], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
