// Package gradebook provides the public entry point: it builds the
// configured container and wraps it in a Record Store while keeping
// implementation details internal.
package gradebook

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/gradebook/internal/sqlite"
	"github.com/mesh-intelligence/gradebook/internal/store"
	"github.com/mesh-intelligence/gradebook/internal/workbook"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// Version is the release version of the module.
const Version = "0.3.0"

// Commit is the VCS revision, set at build time with -ldflags.
var Commit = "dev"

// NewContainer returns the container for cfg.Backend at cfg.DataFile.
func NewContainer(cfg types.Config) (types.Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendWorkbook:
		return workbook.New(cfg.DataFile), nil
	case types.BackendSQLite:
		return sqlite.New(cfg.DataFile), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, cfg.Backend)
	}
}

// Open returns a Record Store over the container described by cfg.
//
// Example:
//
//	rs, err := gradebook.Open(types.Config{
//	    Backend:  types.BackendWorkbook,
//	    DataFile: "datos_escolares.xlsx",
//	    CacheTTL: types.DefaultCacheTTL,
//	}, nil)
func Open(cfg types.Config, logger *slog.Logger) (types.RecordStore, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	opts := []store.Option{store.WithTTL(cfg.CacheTTL)}
	if logger != nil {
		opts = append(opts, store.WithLogger(logger.With("backend", cfg.Backend)))
	}
	return store.New(c, opts...), nil
}
