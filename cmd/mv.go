package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var mvCmd = &cobra.Command{
	Use:   "mv <file> <old-path> <new-path>",
	Short: "Rename an element within its parent storage",
	Long: `mv renames an element in place. It cannot move an element between
storages — old-path and new-path must name siblings under the same parent,
matching the underlying RenameElement operation (storage32.c has no
cross-directory move either; see pkg/cfb's MoveElementTo stub).`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		oldParent, oldName, err := navigateToParent(root, args[1], cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[1], err)
		}
		newParts := splitElementPath(args[2])
		var newName string
		if len(newParts) > 0 {
			newName = newParts[len(newParts)-1]
		}
		if oldName == "" || newName == "" {
			return fmt.Errorf("mv: cannot rename the root storage")
		}
		if elementParentPath(args[1]) != elementParentPath(args[2]) {
			return fmt.Errorf("mv: %s and %s must share a parent storage", args[1], args[2])
		}

		if err := oldParent.RenameElement(oldName, newName); err != nil {
			return fmt.Errorf("mv %s %s: %w", args[1], args[2], err)
		}
		return nil
	},
}

// elementParentPath returns the directory portion of a slash-separated
// element path, for mv's same-parent sanity check.
func elementParentPath(path string) string {
	parts := splitElementPath(path)
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[:len(parts)-1], "/")
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
