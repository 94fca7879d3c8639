// Package main starts the in-memory QuickSwap stub backend used for
// local development of the terminal client.
package main

import (
	"cmp"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/quickswap/quickswap-cli/internal/config"
	"github.com/quickswap/quickswap-cli/internal/logger"
	"github.com/quickswap/quickswap-cli/internal/stub"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()
	addr := options.Addr

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	zapLogger, err := logger.NewConsole()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	store := stub.NewMemory()
	handler := &stub.Handler{Store: store}
	router := stub.NewRouter(handler, zapLogger)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting stub server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
