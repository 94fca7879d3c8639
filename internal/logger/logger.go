// Package logger constructs the application's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// NewFile returns a production logger writing JSON lines to path. The
// terminal client logs to a file because stdout belongs to the UI.
func NewFile(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// NewConsole returns a development logger for processes that own their
// stdout, such as the stub server.
func NewConsole() (*zap.Logger, error) {
	return zap.NewDevelopment()
}
