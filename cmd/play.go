/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SvenDH/card-table/ui"
	"github.com/SvenDH/card-table/ui/screens"
)

const (
	screenWidth  = 960
	screenHeight = 640
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [deck-file]",
	Short: "Open a table window for a deck file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pile, err := loadPile(args[0])
		if err != nil {
			logger.Fatal("loading deck failed", zap.Error(err))
		}

		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("Card Table")

		prog := &ui.Program{
			M:      screens.NewTableScreen(screenWidth, screenHeight, tableConfig(), pile),
			Width:  screenWidth,
			Height: screenHeight,
		}
		if err := ebiten.RunGame(prog); err != nil {
			logger.Fatal("game loop failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
