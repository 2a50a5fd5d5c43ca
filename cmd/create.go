package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

var createFailIfExists bool

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create a new, empty compound file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := cfb.ModeReadWrite
		if createFailIfExists {
			mode |= cfb.ModeFailIfThere
		}
		root, err := cfb.CreateDocfile(args[0], mode)
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		defer root.Close()
		AppContext().Log(fmt.Sprintf("created %s", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().BoolVar(&createFailIfExists, "fail-if-exists", false, "fail instead of overwriting an existing file")
}
