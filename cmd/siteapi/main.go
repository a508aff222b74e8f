package main

import (
	"fmt"
	"os"

	"github.com/northpeak-studio/site-api/internal/config"
	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/server"
	"github.com/northpeak-studio/site-api/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger() {
	logConfig := &logging.Config{
		Level:      "info",
		File:       "~/.site-api/cli.log",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logConfig.Validate(); err != nil {
		fmt.Printf("Invalid logging configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "siteapi",
	Short: "site-api CLI - marketing site backend",
	Long: `site-api CLI runs and exercises the Northpeak Studio site backend:
the contact-form relay and the Calendly booking webhook.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("Error loading config: %v", err)
			os.Exit(1)
		}

		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		if err := cfg.Validate(); err != nil {
			logger.Error("Invalid configuration: %v", err)
			os.Exit(1)
		}

		srv := server.NewServer(cfg)
		srv.Init()
		defer srv.Stop()

		logger.Info("Serving on port %s", cfg.Port)
		if err := srv.Start(); err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersion())
	},
}

func main() {
	initLogger()
	defer logger.Close()

	serveCmd.Flags().String("port", "", "Port to listen on (overrides API_PORT)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
