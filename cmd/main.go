// Package main точка входа квиз-бота, работающего через long polling Bot API
//
// Использование:
//
//	quizbot serve -c config.toml    # запуск бота
//	quizbot validate -c config.toml # проверка конфигурации
//	quizbot version                 # версия
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Версия проставляется при сборке через ldflags
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "quizbot",
	Short: "Math quiz Telegram bot (long polling)",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quizbot %s (commit %s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
