/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SvenDH/card-table/cli"
)

// termCmd represents the term command
var termCmd = &cobra.Command{
	Use:   "term [deck-file]",
	Short: "Run the table in the terminal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pile, err := loadPile(args[0])
		if err != nil {
			logger.Fatal("loading deck failed", zap.Error(err))
		}
		if err := cli.Run(tableConfig(), pile); err != nil {
			logger.Fatal("terminal ui failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}
