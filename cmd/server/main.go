package main

import (
	"os"

	"github.com/northpeak-studio/site-api/internal/config"
	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Configure and get logger
	if err := logging.InitLogger(&logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting site-api in %s mode", cfg.Environment)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg)
	srv.Init()
	defer srv.Stop()

	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
