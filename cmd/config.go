package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/internal/blockio"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective block-size configuration",
	Long: `Prints the Config go-cfb would use for CreateDocfile/OpenStorage:
viper defaults layered with cfb-config.yaml (searched in ., ./config,
$HOME/.cfb, /etc/cfb) and CFB_-prefixed environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := blockio.LoadConfig()
		if err != nil {
			return err
		}
		return printConfig(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func printConfig(cfg *blockio.Config) error {
	if GetOutputFormat() == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	fmt.Printf("big_block_size:     %d\n", cfg.BigBlockSize)
	fmt.Printf("small_block_size:   %d\n", cfg.SmallBlockSize)
	fmt.Printf("mini_stream_cutoff: %d\n", cfg.MiniStreamCutoff)
	fmt.Printf("page_cache_hint:    %d\n", cfg.PageCacheHint)
	return nil
}
