package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopservice/config"
	"github.com/shashiranjanraj/shopservice/pkg/app"
)

// shopservice serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			config.Set("APP_PORT", port)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.Boot(ctx, app.BootOptions{Cache: true, LogSinks: true})
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Serve(ctx)
	},
}

// shopservice route:list
var routeListCmd = &cobra.Command{
	Use:     "route:list",
	Aliases: []string{"routes"},
	Short:   "List the HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RouteList(cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "listen port (overrides APP_PORT)")
}
