/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SvenDH/card-table/deck"
	"github.com/SvenDH/card-table/table"
)

var logger *zap.Logger

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "card-table",
	Short: "Hand ordering and card slot placement on a shared table",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if viper.GetBool("debug") {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int("slots", table.DefaultSlots, "number of card slots")
	rootCmd.PersistentFlags().Duration("cooldown", table.DefaultReorderCooldown, "reorder debounce window")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose logging")
	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.SetEnvPrefix("CARDTABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func tableConfig() table.Config {
	return table.Config{
		Slots:           viper.GetInt("slots"),
		ReorderCooldown: viper.GetDuration("cooldown"),
	}
}

func loadPile(path string) ([]*table.Card, error) {
	return deck.NewParser().LoadFile(path)
}
