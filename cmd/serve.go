/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/SvenDH/card-table/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tables over websockets",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := sql.Open("sqlite", viper.GetString("db"))
		if err != nil {
			logger.Fatal("opening database failed", zap.Error(err))
		}
		defer db.Close()

		repo, err := server.NewRepository(db)
		if err != nil {
			logger.Fatal("preparing database failed", zap.Error(err))
		}

		auth := server.NewAuth(viper.GetString("secret"))
		broker := server.NewMemoryBroker(logger)
		wsServer := server.NewWebsocketServer(broker, repo, tableConfig(), logger)
		router := server.NewRouter(viper.GetString("addr"), repo, auth, wsServer, logger)
		if err := router.Run(); err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", "card-table.db", "sqlite database path")
	serveCmd.Flags().String("secret", "", "token signing secret")
	viper.BindPFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}
