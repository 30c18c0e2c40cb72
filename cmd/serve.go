package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Address to listen on, e.g. :5000")
	lo.Must0(viper.BindPFlag(key.ServerAddress, serveCmd.Flags().Lookup("address")))

	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server exposing the video, unblock, chat and proxy endpoints.
The server refuses to start when an endpoint template or proxy target is malformed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("debug")) {
			gin.SetMode(gin.ReleaseMode)
		}

		srv, err := server.FromConfig()
		handleErr(err)

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := viper.GetString(key.ServerAddress)
		shutdown := time.Duration(viper.GetInt(key.ServerShutdownTimeout)) * time.Second

		handleErr(srv.Run(ctx, addr, shutdown))
		log.Info("server stopped")
	},
}

// commandContext returns the command's context, or Background when it runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
