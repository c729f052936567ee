// Package internal provides the App struct that wires the transport client,
// the orchestration core, and the observability layer together for the CLI.
package internal

import (
	"os"

	"github.com/a1mart/tasker/internal/core"
	"github.com/a1mart/tasker/internal/observability"
	"github.com/a1mart/tasker/internal/transport"
)

// App holds all service dependencies of the tasker client.
type App struct {
	Config *core.Config

	Client *transport.Client

	Store     *core.Store
	Monitor   core.ConnectionMonitor
	Syncer    core.DataSynchronizer
	Debouncer *core.SearchDebouncer
	Mutations *core.MutationPipeline

	EventLog observability.EventLog
}

// NewApp loads configuration from basePath and wires all components.
func NewApp(basePath string) (*App, error) {
	cfg, err := core.NewConfigManager(basePath).Load()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	app.EventLog, err = observability.NewJSONLEventLog(cfg.EventLogPath)
	if err != nil {
		return nil, err
	}

	app.Client = transport.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	app.Store = core.NewStore()
	app.Monitor = core.NewConnectionMonitor(app.Client, app.Store, app.EventLog)
	app.Syncer = core.NewDataSynchronizer(app.Client, app.Monitor, app.Store, app.EventLog, cfg.PageSize, cfg.AnalyticsWindow)
	app.Debouncer = core.NewSearchDebouncer(app.Client, app.Monitor, app.Store, app.Syncer, app.EventLog, cfg.SettlingWindow, cfg.SearchPageSize)
	app.Mutations = core.NewMutationPipeline(app.Client, app.Monitor, app.Store, app.Syncer, app.EventLog)

	return app, nil
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.Debouncer != nil {
		a.Debouncer.Flush()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath returns the directory configuration is read from: the
// current directory if it holds a .taskerrc, otherwise the home directory.
func ResolveBasePath() string {
	if _, err := os.Stat(".taskerrc"); err == nil {
		return "."
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
