package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tmorland/facegen/internal/cache"
)

var flagClearCacheDir string

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Clear the on-disk result cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		disk, err := cache.NewDisk(flagClearCacheDir)
		if err != nil {
			return err
		}
		if err := disk.Clear(); err != nil {
			return err
		}
		cmd.Println("Cache cleared.")
		return nil
	},
}

func init() {
	clearCacheCmd.Flags().StringVar(&flagClearCacheDir, "cache-dir", "", "cache directory to clear")
}
