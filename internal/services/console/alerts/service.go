package alerts

import (
	"context"
	"fmt"
	"sort"
)

// Dismissals persists which alerts an operator silenced on a node.
type Dismissals interface {
	// Dismissed returns the message IDs dismissed on node.
	Dismissed(ctx context.Context, node string) (map[string]bool, error)
	// Dismiss records a dismissal. Dismissing twice is not an error.
	Dismiss(ctx context.Context, node, messageID string) error
	// Restore removes a dismissal. Restoring an unknown ID is not an error.
	Restore(ctx context.Context, node, messageID string) error
}

// Service merges check results with the daemon status file, applies the
// node's dismissals, and answers the status and detail views.
type Service struct {
	runner     *Runner
	statusPath string
	node       string
	store      Dismissals
}

// NewService wires the alert sources together. runner and statusPath may be
// zero when a node has no checks installed.
func NewService(runner *Runner, statusPath, node string, store Dismissals) *Service {
	return &Service{runner: runner, statusPath: statusPath, node: node, store: store}
}

// Node returns the node identity dismissals are keyed by.
func (s *Service) Node() string { return s.node }

// Current returns every known alert, de-duplicated by message ID keeping
// the worst level, sorted most severe first, with dismissals marked.
func (s *Service) Current(ctx context.Context) ([]Alert, error) {
	checked, err := s.runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run checks: %w", err)
	}
	filed, err := LoadStatusFile(s.statusPath)
	if err != nil {
		return nil, fmt.Errorf("load status file: %w", err)
	}

	byID := make(map[string]Alert)
	for _, alert := range append(checked, filed...) {
		existing, ok := byID[alert.MessageID]
		if !ok || alert.Level > existing.Level {
			byID[alert.MessageID] = alert
		}
	}

	dismissed := map[string]bool{}
	if s.store != nil {
		dismissed, err = s.store.Dismissed(ctx, s.node)
		if err != nil {
			return nil, fmt.Errorf("load dismissals: %w", err)
		}
	}

	alerts := make([]Alert, 0, len(byID))
	for _, alert := range byID {
		alert.Dismissed = dismissed[alert.MessageID]
		alerts = append(alerts, alert)
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Level != alerts[j].Level {
			return alerts[i].Level > alerts[j].Level
		}
		return alerts[i].MessageID < alerts[j].MessageID
	})
	return alerts, nil
}

// Status returns the worst level among non-dismissed alerts.
func (s *Service) Status(ctx context.Context) (Level, error) {
	alerts, err := s.Current(ctx)
	if err != nil {
		return LevelOK, err
	}
	return Worst(alerts), nil
}

// Dismiss silences an alert on this node.
func (s *Service) Dismiss(ctx context.Context, messageID string) error {
	if s.store == nil {
		return fmt.Errorf("dismissals are not configured")
	}
	return s.store.Dismiss(ctx, s.node, messageID)
}

// Restore lifts a dismissal on this node.
func (s *Service) Restore(ctx context.Context, messageID string) error {
	if s.store == nil {
		return fmt.Errorf("dismissals are not configured")
	}
	return s.store.Restore(ctx, s.node, messageID)
}
