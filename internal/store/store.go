package store

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/logx"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

// Theme selects the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Logical keys in the KV namespace.
const (
	keyHistory = "search_history"
	keyUnit    = "preferred_unit"
	keyTheme   = "theme"

	probeKey = "__probe__"
)

// DefaultHistoryMax bounds the history list when no limit is configured.
const DefaultHistoryMax = 5

var validate = validator.New()

// Store owns the search history and the unit/theme preferences. Every
// operation is total: persistence failures and corrupt stored values degrade
// to defaults and are reported through the logger, never to the caller.
type Store struct {
	kv           KV
	maxHistory   int
	defaultUnit  units.System
	defaultTheme Theme
	logger       logx.Logger
}

// New creates a Store over kv. maxHistory <= 0 falls back to DefaultHistoryMax;
// invalid defaults fall back to metric/light.
func New(kv KV, maxHistory int, defaultUnit units.System, defaultTheme Theme, logger logx.Logger) *Store {
	if maxHistory <= 0 {
		maxHistory = DefaultHistoryMax
	}
	if !defaultUnit.Valid() {
		defaultUnit = units.Metric
	}
	if defaultTheme != ThemeLight && defaultTheme != ThemeDark {
		defaultTheme = ThemeLight
	}
	if logger == nil {
		logger = logx.Nop{}
	}
	return &Store{
		kv:           kv,
		maxHistory:   maxHistory,
		defaultUnit:  defaultUnit,
		defaultTheme: defaultTheme,
		logger:       logger,
	}
}

// IsAvailable probes whether the KV can be written and read back.
func (s *Store) IsAvailable() bool {
	if err := s.kv.Set(probeKey, "ok"); err != nil {
		return false
	}
	v, ok, err := s.kv.Get(probeKey)
	if err != nil || !ok || v != "ok" {
		return false
	}
	if err := s.kv.Delete(probeKey); err != nil {
		s.logger.Warnf("store: probe cleanup failed: %v", err)
	}
	return true
}

// ListHistory returns the persisted history, newest first. A structurally
// invalid stored value (anything but a JSON array of strings) is discarded
// and treated as empty.
func (s *Store) ListHistory() []string {
	raw, ok, err := s.kv.Get(keyHistory)
	if err != nil {
		s.logger.Warnf("store: reading history failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warnf("store: discarding corrupt history value: %v", err)
		if err := s.kv.Delete(keyHistory); err != nil {
			s.logger.Warnf("store: resetting corrupt history failed: %v", err)
		}
		return nil
	}
	return list
}

// RecordSearch moves loc's display label to the front of the history,
// dropping any case-insensitive duplicate and evicting the oldest entry past
// the configured bound.
func (s *Store) RecordSearch(loc weather.Location) []string {
	label := loc.Label()
	list := s.ListHistory()

	kept := make([]string, 0, len(list)+1)
	kept = append(kept, label)
	for _, entry := range list {
		if strings.EqualFold(entry, label) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) > s.maxHistory {
		kept = kept[:s.maxHistory]
	}

	s.writeHistory(kept)
	return kept
}

// RemoveAt removes the entry at index. An out-of-bounds index is a no-op.
func (s *Store) RemoveAt(index int) []string {
	list := s.ListHistory()
	if index < 0 || index >= len(list) {
		return list
	}
	list = append(list[:index], list[index+1:]...)
	s.writeHistory(list)
	return list
}

// RemoveByName removes entries equal to name under case-insensitive comparison.
func (s *Store) RemoveByName(name string) []string {
	list := s.ListHistory()
	kept := list[:0]
	removed := false
	for _, entry := range list {
		if strings.EqualFold(entry, name) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return kept
	}
	s.writeHistory(kept)
	return kept
}

// ClearAll empties the history.
func (s *Store) ClearAll() []string {
	s.writeHistory(nil)
	return nil
}

func (s *Store) writeHistory(list []string) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		s.logger.Errorf("store: encoding history failed: %v", err)
		return
	}
	if err := s.kv.Set(keyHistory, string(raw)); err != nil {
		s.logger.Warnf("store: persisting history failed: %v", err)
	}
}

// Unit returns the persisted unit system, or the default when the stored
// value is absent or invalid.
func (s *Store) Unit() units.System {
	raw, ok, err := s.kv.Get(keyUnit)
	if err != nil {
		s.logger.Warnf("store: reading unit preference failed: %v", err)
		return s.defaultUnit
	}
	if !ok {
		return s.defaultUnit
	}
	if err := validate.Var(raw, "oneof=metric imperial"); err != nil {
		s.logger.Warnf("store: discarding invalid unit preference %q", raw)
		return s.defaultUnit
	}
	return units.System(raw)
}

// SetUnit persists the unit preference. Invalid input is rejected with no
// persistence side effect.
func (s *Store) SetUnit(u units.System) error {
	if err := validate.Var(string(u), "oneof=metric imperial"); err != nil {
		return err
	}
	if err := s.kv.Set(keyUnit, string(u)); err != nil {
		s.logger.Warnf("store: persisting unit preference failed: %v", err)
	}
	return nil
}

// ThemePreference returns the persisted theme, or the default when absent or invalid.
func (s *Store) ThemePreference() Theme {
	raw, ok, err := s.kv.Get(keyTheme)
	if err != nil {
		s.logger.Warnf("store: reading theme preference failed: %v", err)
		return s.defaultTheme
	}
	if !ok {
		return s.defaultTheme
	}
	if err := validate.Var(raw, "oneof=light dark"); err != nil {
		s.logger.Warnf("store: discarding invalid theme preference %q", raw)
		return s.defaultTheme
	}
	return Theme(raw)
}

// SetTheme persists the theme preference. Invalid input is rejected with no
// persistence side effect.
func (s *Store) SetTheme(t Theme) error {
	if err := validate.Var(string(t), "oneof=light dark"); err != nil {
		return err
	}
	if err := s.kv.Set(keyTheme, string(t)); err != nil {
		s.logger.Warnf("store: persisting theme preference failed: %v", err)
	}
	return nil
}
