// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trace API over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log.SetVerbose(Args.verbose)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.NewServer().Start(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().BoolVarP(&Args.verbose, "verbose", "v", false, "verbose")
	rootCmd.AddCommand(serveCmd)
}
