package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var lsCmd = &cobra.Command{
	Use:   "ls <file> [path]",
	Short: "List the elements of a storage",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadOnly)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		target := root
		if len(args) == 2 && args[1] != "" && args[1] != "/" {
			opened, err := root.OpenStorage(args[1], cfb.ModeReadOnly)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[1], err)
			}
			target = opened
		}

		it, err := target.EnumElements()
		if err != nil {
			return fmt.Errorf("listing %s: %w", args[0], err)
		}
		var entries []cfb.Statstg
		for {
			batch := it.Next(64)
			if len(batch) == 0 {
				break
			}
			entries = append(entries, batch...)
		}

		if GetOutputFormat() == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tSIZE\tNAME")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", stgTypeString(e.Type), e.Size, e.Name)
		}
		return w.Flush()
	},
}

func stgTypeString(t cfb.StgType) string {
	switch t {
	case cfb.StgTypeStorage:
		return "storage"
	case cfb.StgTypeStream:
		return "stream"
	case cfb.StgTypeRoot:
		return "root"
	default:
		return "unknown"
	}
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
