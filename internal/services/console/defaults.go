package console

import (
	"fmt"

	"github.com/brinedeck/wardroom/internal/appliance/network"
	"github.com/brinedeck/wardroom/internal/appliance/system"
	"github.com/brinedeck/wardroom/internal/platform/icons"
	"github.com/brinedeck/wardroom/internal/services/console/gridfilter"
	"github.com/brinedeck/wardroom/internal/services/console/site"
	"github.com/brinedeck/wardroom/internal/services/console/storage"
)

// RegisterDefaultAdmins binds the appliance's built-in configuration models
// to the registry, each one backed by a datagrid source over its table.
// Registration happens once at startup, before the HTTP handler mounts the
// registry's entries.
func RegisterDefaultAdmins(s *site.Site, store storage.GridStore) error {
	settingsSource, err := NewGridSource(store, "system_settings",
		[]string{"id", "language", "timezone", "wizard_shown"},
		gridfilter.Columns{
			"id":           gridfilter.Int,
			"language":     gridfilter.String,
			"timezone":     gridfilter.String,
			"wizard_shown": gridfilter.Bool,
		})
	if err != nil {
		return err
	}
	if _, err := s.RegisterWith(site.Config{
		VerboseName: "Settings",
		Icon:        string(icons.IDSettings),
		Source:      settingsSource,
	}, system.Settings{}); err != nil {
		return fmt.Errorf("register system settings: %w", err)
	}

	advancedSource, err := NewGridSource(store, "system_advanced",
		[]string{"id", "console_msg", "serial_console"},
		gridfilter.Columns{
			"id":             gridfilter.Int,
			"console_msg":    gridfilter.Bool,
			"serial_console": gridfilter.Bool,
		})
	if err != nil {
		return err
	}
	if _, err := s.RegisterWith(site.Config{
		VerboseName: "Advanced",
		Icon:        string(icons.IDAdvanced),
		Source:      advancedSource,
	}, system.Advanced{}); err != nil {
		return fmt.Errorf("register system advanced: %w", err)
	}

	networkSource, err := NewGridSource(store, "network_global_config",
		[]string{"id", "hostname", "domain"},
		gridfilter.Columns{
			"id":       gridfilter.Int,
			"hostname": gridfilter.String,
			"domain":   gridfilter.String,
		})
	if err != nil {
		return err
	}
	if _, err := s.RegisterWith(site.Config{
		VerboseName: "Global Configuration",
		Icon:        string(icons.IDNetwork),
		Source:      networkSource,
	}, network.GlobalConfiguration{}); err != nil {
		return fmt.Errorf("register network global configuration: %w", err)
	}

	return nil
}
