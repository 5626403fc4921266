package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-QuizBot/internal/config"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(validateConfigPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration is valid: %s\n", validateConfigPath)
		fmt.Fprintf(out, "  api_url: %s\n", cfg.Telegram.APIURL)
		fmt.Fprintf(out, "  poller:  limit=%d timeout=%ds interval=%dms workers=%d\n",
			cfg.Poller.Limit, cfg.Poller.Timeout, cfg.Poller.IntervalMs, cfg.Poller.Workers)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "config.toml", "path to config file")
	rootCmd.AddCommand(validateCmd)
}
