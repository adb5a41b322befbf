// Package alerts evaluates appliance health checks and aggregates their
// results into the single status light the console header shows. Alerts come
// from two places: Lua check scripts shipped with the appliance and the
// legacy status file the monitoring daemon writes. Operators can dismiss an
// alert per node; dismissed alerts stop escalating the status light but stay
// visible on the detail page.
package alerts

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Level orders alert severities from least to most urgent.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelCrit
)

// String returns the wire spelling used in status files and JSON.
func (l Level) String() string {
	switch l {
	case LevelCrit:
		return "CRIT"
	case LevelWarn:
		return "WARN"
	default:
		return "OK"
	}
}

// ParseLevel maps a wire spelling back to its Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OK":
		return LevelOK, nil
	case "WARN":
		return LevelWarn, nil
	case "CRIT":
		return LevelCrit, nil
	}
	return LevelOK, fmt.Errorf("unknown alert level %q", s)
}

// Alert is one health finding, unique per MessageID.
type Alert struct {
	Level     Level
	MessageID string
	Message   string
	Dismissed bool
}

// alertLineRE matches the status file line format "LEVEL[msgid]: message".
var alertLineRE = regexp.MustCompile(`^(?P<status>\w+)\[(?P<msgid>.+?)\]: (?P<message>.+)$`)

// ParseLine parses one status file line.
func ParseLine(line string) (Alert, error) {
	match := alertLineRE.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return Alert{}, fmt.Errorf("malformed alert line %q", line)
	}
	level, err := ParseLevel(match[1])
	if err != nil {
		return Alert{}, err
	}
	return Alert{Level: level, MessageID: match[2], Message: match[3]}, nil
}

// LoadStatusFile reads the monitoring daemon's status file. A missing file
// means no alerts. Blank lines are skipped; a malformed line fails the read
// so a corrupt file never half-loads.
func LoadStatusFile(path string) ([]Alert, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open status file: %w", err)
	}
	defer f.Close()

	var alerts []Alert
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		alert, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read status file: %w", err)
	}
	return alerts, nil
}

// Worst returns the highest level among non-dismissed alerts.
func Worst(alerts []Alert) Level {
	level := LevelOK
	for _, alert := range alerts {
		if alert.Dismissed {
			continue
		}
		if alert.Level > level {
			level = alert.Level
		}
	}
	return level
}
