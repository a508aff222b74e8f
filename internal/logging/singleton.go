package logging

import (
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger initializes the global logger instance.
// This should be called once at startup before any logger usage.
func InitLogger(config *Config) error {
	mu.Lock()
	defer mu.Unlock()

	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	instance = logger
	return nil
}

// GetGlobalLogger returns the singleton logger instance.
// If InitLogger was never called, a stderr-only fallback is created so
// library code never has to nil-check the logger.
func GetGlobalLogger() *Logger {
	mu.RLock()
	if instance != nil {
		defer mu.RUnlock()
		return instance
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		logger, err := NewLogger(&Config{
			File:       "./logs/site-api.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		})
		if err != nil {
			panic("failed to initialize fallback logger: " + err.Error())
		}
		instance = logger
	}
	return instance
}
