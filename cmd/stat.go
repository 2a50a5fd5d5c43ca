package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var statCmd = &cobra.Command{
	Use:   "stat <file> <path>",
	Short: "Show an element's type, size and class id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadOnly)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		st, err := statPath(root, args[1])
		if err != nil {
			return fmt.Errorf("stat %s: %w", args[1], err)
		}

		if GetOutputFormat() == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		fmt.Printf("name:  %s\n", st.Name)
		fmt.Printf("type:  %s\n", stgTypeString(st.Type))
		fmt.Printf("size:  %d\n", st.Size)
		fmt.Printf("clsid: %s\n", st.CLSID)
		return nil
	},
}

// statPath resolves path against root and returns its Statstg, distinguishing
// the root storage itself (empty or "/" path) from a nested element whose
// Stat must be taken through its parent.
func statPath(root *cfb.Storage, path string) (cfb.Statstg, error) {
	parts := splitElementPath(path)
	if len(parts) == 0 {
		return root.Stat(0)
	}

	parent, name, err := navigateToParent(root, path, cfb.ModeReadOnly)
	if err != nil {
		return cfb.Statstg{}, err
	}

	if sub, err := parent.OpenStorage(name, cfb.ModeReadOnly); err == nil {
		return sub.Stat(0)
	}
	stream, err := parent.OpenStream(name, cfb.ModeReadOnly)
	if err != nil {
		return cfb.Statstg{}, err
	}
	return stream.Stat(0)
}

func init() {
	rootCmd.AddCommand(statCmd)
}
