package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/autodcf/api"
)

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)

		api.Version = version
		srv := api.NewServer(cfg, logger)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
}
