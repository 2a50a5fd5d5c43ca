package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var classCmd = &cobra.Command{
	Use:   "class <file> <path> <clsid>",
	Short: "Stamp a class id (CLSID) onto a storage",
	Long: `class sets the CLSID on the storage at <path> (the root storage if
<path> is "" or "/"). <clsid> is a standard UUID string.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[2])
		if err != nil {
			return fmt.Errorf("parsing clsid %q: %w", args[2], err)
		}

		root, err := cfb.OpenStorage(args[0], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		parts := splitElementPath(args[1])
		if len(parts) == 0 {
			return root.SetClass(id)
		}

		parent, name, err := navigateToParent(root, args[1], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[1], err)
		}
		target, err := parent.OpenStorage(name, cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("class: %s is not a storage: %w", args[1], err)
		}
		return target.SetClass(id)
	},
}

func init() {
	rootCmd.AddCommand(classCmd)
}
