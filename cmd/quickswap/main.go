// Package main starts the QuickSwap terminal client: configuration,
// file logging, the state store, the API client and the Bubble Tea
// program.
package main

import (
	"cmp"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/bookmarks"
	"github.com/quickswap/quickswap-cli/internal/config"
	"github.com/quickswap/quickswap-cli/internal/logger"
	"github.com/quickswap/quickswap-cli/internal/notify"
	"github.com/quickswap/quickswap-cli/internal/store"
	"github.com/quickswap/quickswap-cli/internal/ui"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	showVer := false
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			showVer = true
		}
	}
	if showVer {
		fmt.Printf("QuickSwap Client\nVersion: %s\nBuild Date: %s\n",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	options := config.Parse()

	zapLogger, err := logger.NewFile(options.LogFile)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	initial := store.Initial()
	initial.Theme.NightMode = options.NightMode
	st := store.New(initial)

	client := api.New(options.ServerURL, func() string {
		return st.State().Session.Token
	}, zapLogger)

	marks := bookmarks.New(client, zapLogger)
	poller := notify.NewPoller(client.UnreadCount, notify.DefaultInterval, zapLogger)

	app := ui.NewApp(st, client, marks, poller, zapLogger)
	program := tea.NewProgram(app, tea.WithAltScreen())
	app.SetSend(program.Send)

	zapLogger.Info("starting client",
		zap.String("server", options.ServerURL),
		zap.Bool("night", options.NightMode))

	if _, err := program.Run(); err != nil {
		zapLogger.Fatal("program exited", zap.Error(err))
	}
}
