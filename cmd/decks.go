/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// decksCmd represents the decks command
var decksCmd = &cobra.Command{
	Use:   "decks [deck-file]",
	Short: "Validate a deck file and list its cards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pile, err := loadPile(args[0])
		if err != nil {
			logger.Fatal("invalid deck", zap.Error(err))
		}
		for _, card := range pile {
			line := fmt.Sprintf("%s {%d} %s", card.Name, card.Cost, card.Kind)
			if card.Power != 0 || card.Health != 0 {
				line = fmt.Sprintf("%s %d/%d", line, card.Power, card.Health)
			}
			fmt.Println(line)
		}
		fmt.Printf("%d cards ok\n", len(pile))
	},
}

func init() {
	rootCmd.AddCommand(decksCmd)
}
