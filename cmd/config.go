package cmd

import (
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/tmorland/facegen/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Print a sample configuration file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.SampleJSON()
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

var flagCheckRegion string

var checkAccessCmd = &cobra.Command{
	Use:   "check-access",
	Short: "Verify AWS credentials resolve for Bedrock calls",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		loadOpts := []func(*awsconfig.LoadOptions) error{}
		if flagCheckRegion != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(flagCheckRegion))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return err
		}
		creds, err := cfg.Credentials.Retrieve(ctx)
		if err != nil {
			return fmt.Errorf("no usable AWS credentials: %w", err)
		}
		cmd.Printf("Credentials OK (source: %s, region: %s)\n", creds.Source, cfg.Region)
		return nil
	},
}

func init() {
	checkAccessCmd.Flags().StringVarP(&flagCheckRegion, "region", "r", "", "AWS region to test")
}
