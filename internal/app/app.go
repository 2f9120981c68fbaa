// Package app wires the pipeline together: configuration, logging, the
// simulation catalog, seed loading, execution, and report output.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/principia/internal/catalog"
	"github.com/vk/principia/internal/seed"
)

// App is one configured pipeline instance.
type App struct {
	logger  *slog.Logger
	logW    io.Writer
	catalog *catalog.Catalog
	loader  *seed.Loader
}

// NewApp assembles an App with the compiled-in simulation modules. Logs go
// to logW in the format the config selects.
func NewApp(logW io.Writer, cfg *Config) *App {
	return &App{
		logger:  newLogger(cfg, logW),
		logW:    logW,
		catalog: catalog.Build(coreModules...),
		loader:  seed.NewLoader(),
	}
}

// Catalog exposes the assembled simulation catalog, mainly so callers can
// inspect formula metadata.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
