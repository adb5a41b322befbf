package alerts

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shopify/go-lua"
)

// Runner executes the Lua check scripts in a directory. Each script reports
// findings through the Alert global:
//
//	Alert.warn("volume_degraded", "Volume tank is DEGRADED")
//
// Scripts run in file-name order with a fresh interpreter each, so one
// broken check cannot poison the next.
type Runner struct {
	dir string
}

// NewRunner returns a runner over dir. A missing directory yields no alerts.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes every check script and collects their findings. A script
// that fails to load or raises an error is logged and skipped; the
// remaining checks still run.
func (r *Runner) Run(ctx context.Context) ([]Alert, error) {
	if r == nil || r.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read checks dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var alerts []Alert
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return alerts, err
		}
		found, err := r.runScript(filepath.Join(r.dir, name))
		if err != nil {
			log.Printf("alerts: check %s failed: %v", name, err)
			continue
		}
		alerts = append(alerts, found...)
	}
	return alerts, nil
}

func (r *Runner) runScript(path string) ([]Alert, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	var alerts []Alert
	collect := func(level Level) lua.Function {
		return func(state *lua.State) int {
			messageID := lua.CheckString(state, 1)
			message := lua.CheckString(state, 2)
			alerts = append(alerts, Alert{Level: level, MessageID: messageID, Message: message})
			return 0
		}
	}

	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "ok", Function: collect(LevelOK)},
		{Name: "warn", Function: collect(LevelWarn)},
		{Name: "crit", Function: collect(LevelCrit)},
	}, 0)
	state.SetGlobal("Alert")

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	return alerts, nil
}
