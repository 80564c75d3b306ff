package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sportiq/sportiq/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat pipeline over HTTP",
	Long: `Start an HTTP server exposing the resolution pipeline:

  POST /api/chat     {"text": "..."} -> {"answer": "...", "intent": "...", ...}
  GET  /api/healthz  liveness check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withPolish, _ := cmd.Flags().GetBool("polish")
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = viper.GetString("serve.addr")
		}

		b, err := buildBot(withPolish)
		if err != nil {
			return fmt.Errorf("failed to start SportIQ: %w", err)
		}
		defer b.Close()

		server := api.NewServer(b, api.Config{
			Addr:           addr,
			AllowedOrigins: viper.GetStringSlice("serve.allowed_origins"),
		})
		fmt.Printf("SportIQ listening on %s\n", addr)
		return server.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default :8080, or serve.addr from config)")
	serveCmd.Flags().Bool("polish", false, "Rewrite answers in a friendlier tone via OpenRouter")
}
