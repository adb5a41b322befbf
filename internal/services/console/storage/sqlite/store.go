package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/brinedeck/wardroom/internal/appliance/network"
	"github.com/brinedeck/wardroom/internal/appliance/system"
	sqlitemigrate "github.com/brinedeck/wardroom/internal/platform/storage/sqlitemigrate"
	"github.com/brinedeck/wardroom/internal/services/console/storage"
	"github.com/brinedeck/wardroom/internal/services/console/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// identRE limits grid identifiers to plain snake_case names. Tables and
// columns are interpolated into SQL, so nothing else may pass.
var identRE = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store provides a SQLite-backed store implementing console storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}

	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// runMigrations runs embedded SQL migrations.
func (s *Store) runMigrations() error {
	return sqlitemigrate.Apply(s.sqlDB, migrations.FS)
}

func (s *Store) guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// LatestSettings returns the active system settings row.
func (s *Store) LatestSettings(ctx context.Context) (system.Settings, error) {
	if err := s.guard(ctx); err != nil {
		return system.Settings{}, err
	}

	var out system.Settings
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, language, timezone, wizard_shown FROM system_settings ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&out.ID, &out.Language, &out.Timezone, &out.WizardShown); err != nil {
		return system.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return out, nil
}

// PutSettings appends a settings row and returns its id.
func (s *Store) PutSettings(ctx context.Context, settings system.Settings) (int64, error) {
	if err := s.guard(ctx); err != nil {
		return 0, err
	}
	if strings.TrimSpace(settings.Language) == "" {
		return 0, fmt.Errorf("language is required")
	}
	if strings.TrimSpace(settings.Timezone) == "" {
		return 0, fmt.Errorf("timezone is required")
	}

	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO system_settings (language, timezone, wizard_shown) VALUES (?, ?, ?)",
		settings.Language, settings.Timezone, settings.WizardShown)
	if err != nil {
		return 0, fmt.Errorf("insert settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("settings id: %w", err)
	}
	return id, nil
}

// MarkWizardShown flags the active settings row so the first-run wizard
// offers itself at most once.
func (s *Store) MarkWizardShown(ctx context.Context) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"UPDATE system_settings SET wizard_shown = 1 WHERE id = (SELECT MAX(id) FROM system_settings)")
	if err != nil {
		return fmt.Errorf("mark wizard shown: %w", err)
	}
	return nil
}

// LatestAdvanced returns the active advanced settings row.
func (s *Store) LatestAdvanced(ctx context.Context) (system.Advanced, error) {
	if err := s.guard(ctx); err != nil {
		return system.Advanced{}, err
	}

	var out system.Advanced
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, console_msg, serial_console FROM system_advanced ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&out.ID, &out.ConsoleMsg, &out.SerialConsole); err != nil {
		return system.Advanced{}, fmt.Errorf("load advanced settings: %w", err)
	}
	return out, nil
}

// PutAdvanced appends an advanced settings row and returns its id.
func (s *Store) PutAdvanced(ctx context.Context, advanced system.Advanced) (int64, error) {
	if err := s.guard(ctx); err != nil {
		return 0, err
	}

	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO system_advanced (console_msg, serial_console) VALUES (?, ?)",
		advanced.ConsoleMsg, advanced.SerialConsole)
	if err != nil {
		return 0, fmt.Errorf("insert advanced settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("advanced settings id: %w", err)
	}
	return id, nil
}

// LatestGlobalConfiguration returns the active network configuration row.
func (s *Store) LatestGlobalConfiguration(ctx context.Context) (network.GlobalConfiguration, error) {
	if err := s.guard(ctx); err != nil {
		return network.GlobalConfiguration{}, err
	}

	var out network.GlobalConfiguration
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, hostname, domain FROM network_global_config ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&out.ID, &out.Hostname, &out.Domain); err != nil {
		return network.GlobalConfiguration{}, fmt.Errorf("load global configuration: %w", err)
	}
	return out, nil
}

// PutGlobalConfiguration appends a network configuration row and returns its id.
func (s *Store) PutGlobalConfiguration(ctx context.Context, gc network.GlobalConfiguration) (int64, error) {
	if err := s.guard(ctx); err != nil {
		return 0, err
	}
	if strings.TrimSpace(gc.Hostname) == "" {
		return 0, fmt.Errorf("hostname is required")
	}

	res, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO network_global_config (hostname, domain) VALUES (?, ?)",
		gc.Hostname, gc.Domain)
	if err != nil {
		return 0, fmt.Errorf("insert global configuration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("global configuration id: %w", err)
	}
	return id, nil
}

// Dismissed returns the message IDs dismissed on node.
func (s *Store) Dismissed(ctx context.Context, node string) (map[string]bool, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(node) == "" {
		return nil, fmt.Errorf("node is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT message_id FROM alert_dismissals WHERE node = ?", node)
	if err != nil {
		return nil, fmt.Errorf("load dismissals: %w", err)
	}
	defer rows.Close()

	dismissed := make(map[string]bool)
	for rows.Next() {
		var messageID string
		if err := rows.Scan(&messageID); err != nil {
			return nil, fmt.Errorf("scan dismissal: %w", err)
		}
		dismissed[messageID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dismissals: %w", err)
	}
	return dismissed, nil
}

// Dismiss records a dismissal. Dismissing twice keeps the original timestamp.
func (s *Store) Dismiss(ctx context.Context, node, messageID string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(node) == "" {
		return fmt.Errorf("node is required")
	}
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("message id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT OR IGNORE INTO alert_dismissals (node, message_id, dismissed_at) VALUES (?, ?, ?)",
		node, messageID, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert dismissal: %w", err)
	}
	return nil
}

// Restore removes a dismissal. Restoring an unknown ID is a no-op.
func (s *Store) Restore(ctx context.Context, node, messageID string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(node) == "" {
		return fmt.Errorf("node is required")
	}
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("message id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM alert_dismissals WHERE node = ? AND message_id = ?", node, messageID)
	if err != nil {
		return fmt.Errorf("delete dismissal: %w", err)
	}
	return nil
}

// GridRows serves a datagrid read. Identifiers come from registration wiring
// and are still validated before interpolation; values travel as parameters.
func (s *Store) GridRows(ctx context.Context, q storage.GridQuery) ([][]string, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if !identRE.MatchString(q.Table) {
		return nil, fmt.Errorf("invalid table %q", q.Table)
	}
	if len(q.Columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}
	for _, column := range q.Columns {
		if !identRE.MatchString(column) {
			return nil, fmt.Errorf("invalid column %q", column)
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.Table)

	args := append([]any(nil), q.Args...)
	if strings.TrimSpace(q.Where) != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
	}
	if q.OrderBy != "" {
		column := strings.TrimPrefix(q.OrderBy, "-")
		if !identRE.MatchString(column) {
			return nil, fmt.Errorf("invalid order column %q", column)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(column)
		if strings.HasPrefix(q.OrderBy, "-") {
			sb.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("grid query: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(q.Columns))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan grid row: %w", err)
		}
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = cell.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read grid rows: %w", err)
	}
	return out, nil
}

var _ storage.Store = (*Store)(nil)
