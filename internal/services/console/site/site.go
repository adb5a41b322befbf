// Package site holds the admin-site registry: the process-wide mapping from
// appliance data models to the handlers that serve their management pages.
//
// A Site is populated once during startup wiring and is read-only while the
// console serves requests. The mutex exists so registration-order tests and
// future dynamic plugins stay safe, not because request handling mutates the
// registry.
package site

import (
	"fmt"
	"log"
	"reflect"
	"sync"
)

// defaultAdminName tags handlers created without per-registration options.
const defaultAdminName = "ModelAdmin"

// NotRegisteredError reports an attempt to unregister a model that has no
// registry entry.
type NotRegisteredError struct {
	Model string
}

// Error implements the error interface.
func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("model %s is not registered", e.Model)
}

// Site maps registered models to their admin handlers and answers
// "which handler owns this model" lookups for the rest of the console.
type Site struct {
	mu sync.RWMutex
	// registry keys model types by reflect.Type and standalone handlers by
	// their own pointer.
	registry map[any]*ModelAdmin
	// adminOf is the model-to-handler side table. Unregister leaves entries
	// behind on purpose: callers holding a model can still resolve the
	// handler that last served it, matching the overwrite-without-cleanup
	// contract of registration.
	adminOf map[reflect.Type]*ModelAdmin
}

// New returns an empty Site.
func New() *Site {
	return &Site{
		registry: make(map[any]*ModelAdmin),
		adminOf:  make(map[reflect.Type]*ModelAdmin),
	}
}

// Register binds one or more models to default-configured handlers and
// returns the handlers created, in argument order.
func (s *Site) Register(models ...any) ([]*ModelAdmin, error) {
	return s.register(Config{}, false, models)
}

// RegisterWith binds one or more models to handlers built from cfg. Each
// handler's diagnostic name becomes "<ModelName>Admin" unless cfg.Name
// overrides it.
func (s *Site) RegisterWith(cfg Config, models ...any) ([]*ModelAdmin, error) {
	return s.register(cfg, true, models)
}

func (s *Site) register(cfg Config, configured bool, models []any) ([]*ModelAdmin, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("register: at least one model is required")
	}

	created := make([]*ModelAdmin, 0, len(models))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, model := range models {
		modelType, err := modelTypeOf(model)
		if err != nil {
			return created, fmt.Errorf("register: %w", err)
		}

		name := defaultAdminName
		if configured {
			name = modelType.Name() + "Admin"
		}
		if cfg.Name != "" {
			name = cfg.Name
		}

		admin := newModelAdmin(s, modelType, cfg, name)
		if _, exists := s.registry[modelType]; exists {
			log.Printf("site: re-registering model %s, replacing handler", modelType.Name())
		}
		s.registry[modelType] = admin
		s.adminOf[modelType] = admin
		created = append(created, admin)
	}
	return created, nil
}

// RegisterStandalone binds a handler with no backing model, keyed by the
// handler itself. cfg must carry the AppLabel and ModuleName that model
// registrations would otherwise derive.
func (s *Site) RegisterStandalone(cfg Config) (*ModelAdmin, error) {
	if cfg.AppLabel == "" || cfg.ModuleName == "" {
		return nil, fmt.Errorf("register standalone: AppLabel and ModuleName are required")
	}
	name := cfg.Name
	if name == "" {
		name = defaultAdminName
	}

	admin := newModelAdmin(s, nil, cfg, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry[admin] = admin
	return admin, nil
}

// Unregister removes each model's registry entry. It stops at the first
// model that has no entry, returning a NotRegisteredError naming it; models
// already processed stay removed. The adminOf side table is left untouched.
func (s *Site) Unregister(models ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, model := range models {
		key, label, err := registryKeyOf(model)
		if err != nil {
			return fmt.Errorf("unregister: %w", err)
		}
		if _, ok := s.registry[key]; !ok {
			return &NotRegisteredError{Model: label}
		}
		delete(s.registry, key)
	}
	return nil
}

// Lookup returns the registered handler for a model type.
func (s *Site) Lookup(model any) (*ModelAdmin, bool) {
	key, _, err := registryKeyOf(model)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.registry[key]
	return admin, ok
}

// AdminFor answers "which handler serves this model" from the side table.
// Unlike Lookup it keeps answering after Unregister, mirroring the
// back-reference the registration left behind.
func (s *Site) AdminFor(model any) (*ModelAdmin, bool) {
	modelType, err := modelTypeOf(model)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.adminOf[modelType]
	return admin, ok
}

// Entries returns a snapshot of all registered handlers. Order follows map
// iteration and is deliberately unspecified.
func (s *Site) Entries() []*ModelAdmin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*ModelAdmin, 0, len(s.registry))
	for _, admin := range s.registry {
		entries = append(entries, admin)
	}
	return entries
}

// Len reports how many handlers are registered.
func (s *Site) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

// modelTypeOf resolves the struct type backing a model value or pointer.
func modelTypeOf(model any) (reflect.Type, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model %s is not a struct type", t)
	}
	return t, nil
}

// registryKeyOf maps an argument to its registry key: the struct type for
// models, the handler pointer for standalone admins.
func registryKeyOf(v any) (any, string, error) {
	if admin, ok := v.(*ModelAdmin); ok {
		return admin, admin.Name(), nil
	}
	modelType, err := modelTypeOf(v)
	if err != nil {
		return nil, "", err
	}
	return modelType, modelType.Name(), nil
}
