package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-cfb",
	Short: "Create, inspect and extract OLE2/CFBF compound files",
	Long: `go-cfb is a command-line tool for working with Compound File Binary
Format (CFBF / OLE2 structured storage) documents: the container format
behind legacy .doc/.xls/.ppt and MSI files.

Commands:
  create    Create a new, empty compound file
  mkdir     Create a storage (directory) inside a compound file
  put       Write a local file's contents into a stream
  cat       Print a stream's contents to stdout
  ls        List the elements of a storage
  stat      Show a single element's type, size and class id
  rm        Destroy an element and everything beneath it
  mv        Rename an element within its parent storage
  class     Stamp a class id (CLSID) onto a storage
  config    Show the effective block-size configuration`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool { return verbose }

// GetQuiet returns the quiet flag value.
func GetQuiet() bool { return quiet }

// GetOutputFormat returns the output format.
func GetOutputFormat() string { return outputFormat }

// AppContext builds an app.Context from the current global flag values, for
// commands that want Log/Error's verbose/quiet gating instead of checking
// GetQuiet/GetVerbose themselves.
func AppContext() *app.Context {
	return &app.Context{OutputFormat: outputFormat, Verbose: verbose, Quiet: quiet}
}
