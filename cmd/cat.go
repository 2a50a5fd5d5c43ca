package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var catCmd = &cobra.Command{
	Use:   "cat <file> <path>",
	Short: "Print a stream's contents to stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := cfb.OpenStorage(args[0], cfb.ModeReadOnly)
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer root.Close()

		parent, name, err := navigateToParent(root, args[1], cfb.ModeReadOnly)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[1], err)
		}
		if name == "" {
			return fmt.Errorf("cat: %q names the root storage", args[1])
		}

		stream, err := parent.OpenStream(name, cfb.ModeReadOnly)
		if err != nil {
			return fmt.Errorf("cat %s: %w", args[1], err)
		}
		_, err = io.Copy(os.Stdout, stream)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
