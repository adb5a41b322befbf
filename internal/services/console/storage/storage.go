package storage

import (
	"context"

	"github.com/brinedeck/wardroom/internal/appliance/network"
	"github.com/brinedeck/wardroom/internal/appliance/system"
)

// SystemStore reads and appends system configuration rows. Configuration is
// append-only; the newest row by id is the active one.
type SystemStore interface {
	LatestSettings(ctx context.Context) (system.Settings, error)
	PutSettings(ctx context.Context, settings system.Settings) (int64, error)
	// MarkWizardShown flags the active settings row so the first-run wizard
	// stops offering itself.
	MarkWizardShown(ctx context.Context) error
	LatestAdvanced(ctx context.Context) (system.Advanced, error)
	PutAdvanced(ctx context.Context, advanced system.Advanced) (int64, error)
}

// NetworkStore reads and appends network configuration rows.
type NetworkStore interface {
	LatestGlobalConfiguration(ctx context.Context) (network.GlobalConfiguration, error)
	PutGlobalConfiguration(ctx context.Context, gc network.GlobalConfiguration) (int64, error)
}

// AlertStore persists per-node alert dismissals.
type AlertStore interface {
	Dismissed(ctx context.Context, node string) (map[string]bool, error)
	Dismiss(ctx context.Context, node, messageID string) error
	Restore(ctx context.Context, node, messageID string) error
}

// GridQuery narrows a datagrid read over one table. Table and Columns come
// from registration wiring, never from the request; Where and Args come from
// the validated filter translation.
type GridQuery struct {
	Table   string
	Columns []string
	Where   string
	Args    []any
	// OrderBy is a validated column name, "-" prefix for descending.
	OrderBy string
	Limit   int
}

// GridStore serves datagrid rows for registered model admins.
type GridStore interface {
	GridRows(ctx context.Context, q GridQuery) ([][]string, error)
}

// Store is a composite interface for console storage concerns.
type Store interface {
	SystemStore
	NetworkStore
	AlertStore
	GridStore
	Close() error
}
