package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var putCmd = &cobra.Command{
	Use:   "put <file> <path> <local-file>",
	Short: "Write a local file's contents into a stream",
	Long: `put replaces (or creates) the stream at <path> inside the compound
file <file> with the contents of <local-file>. An existing stream of that
name is overwritten; an existing storage of that name is an error.`,
	Args: cobra.ExactArgs(3),
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
			return fmt.Errorf("put: %q names the root storage", args[1])
		}

		local, err := os.Open(args[2])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[2], err)
		}
		defer local.Close()

		stream, err := parent.CreateStream(name, cfb.ModeCreate|cfb.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("put %s: %w", args[1], err)
		}
		n, err := io.Copy(stream, local)
		if err != nil {
			return fmt.Errorf("writing %s: %w", args[1], err)
		}
		AppContext().Log(fmt.Sprintf("wrote %d bytes to %s", n, args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
