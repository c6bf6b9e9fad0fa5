package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmorland/facegen/internal/log"
)

var flagDebug bool

var rootCmd = &cobra.Command{
	Use:          "facegen",
	Short:        "Generate consistent character portraits with AWS Bedrock",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cmd.SetContext(log.NewContext(cmd.Context(), log.New(os.Stderr, flagDebug)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd, clearCacheCmd, initConfigCmd, checkAccessCmd)
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
