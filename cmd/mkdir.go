package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var mkdirParents bool

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <file> <path>",
	Short: "Create a storage inside a compound file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		var parent *cfb.Storage
		var name string
		if mkdirParents {
			parent, name, err = mkdirAll(root, args[1], cfb.ModeReadWrite)
		} else {
			parent, name, err = navigateToParent(root, args[1], cfb.ModeReadWrite)
		}
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[1], err)
		}
		if name == "" {
			return fmt.Errorf("mkdir: %q names the root storage", args[1])
		}

		if _, err := parent.CreateStorage(name, cfb.ModeReadWrite); err != nil {
			return fmt.Errorf("mkdir %s: %w", args[1], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	mkdirCmd.Flags().BoolVarP(&mkdirParents, "parents", "p", false, "create intermediate storages as needed")
}
