package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

func newTestStore() *Store {
	return New(NewMemoryKV(), 5, units.Metric, ThemeLight, nil)
}

func loc(name, country string) weather.Location {
	return weather.Location{Name: name, Country: country}
}

func TestRecordSearchDeduplicatesCaseInsensitively(t *testing.T) {
	s := newTestStore()

	s.RecordSearch(loc("Jakarta", "ID"))
	list := s.RecordSearch(loc("jakarta", "id"))

	require.Len(t, list, 1)
	assert.Equal(t, "jakarta, id", list[0])
}

func TestRecordSearchEvictsOldestPastBound(t *testing.T) {
	s := newTestStore()

	cities := []string{"Paris", "London", "Tokyo", "Oslo", "Lima", "Cairo"}
	for _, c := range cities {
		s.RecordSearch(loc(c, "XX"))
	}

	list := s.ListHistory()
	require.Len(t, list, 5)
	assert.Equal(t, "Cairo, XX", list[0])
	assert.NotContains(t, list, "Paris, XX") // oldest evicted
}

func TestRecordSearchMovesRepeatToFront(t *testing.T) {
	s := newTestStore()

	s.RecordSearch(loc("Paris", "FR"))
	s.RecordSearch(loc("London", "GB"))
	list := s.RecordSearch(loc("Paris", "FR"))

	require.Len(t, list, 2)
	assert.Equal(t, "Paris, FR", list[0])
	assert.Equal(t, "London, GB", list[1])
}

func TestRemoveAtOutOfRangeIsNoOp(t *testing.T) {
	s := newTestStore()
	s.RecordSearch(loc("Paris", "FR"))

	assert.Equal(t, []string{"Paris, FR"}, s.RemoveAt(5))
	assert.Equal(t, []string{"Paris, FR"}, s.RemoveAt(-1))
	assert.Equal(t, []string{"Paris, FR"}, s.ListHistory())
}

func TestRemoveAt(t *testing.T) {
	s := newTestStore()
	s.RecordSearch(loc("Paris", "FR"))
	s.RecordSearch(loc("London", "GB"))

	list := s.RemoveAt(0)
	assert.Equal(t, []string{"Paris, FR"}, list)
}

func TestRemoveByName(t *testing.T) {
	s := newTestStore()
	s.RecordSearch(loc("Paris", "FR"))
	s.RecordSearch(loc("London", "GB"))

	list := s.RemoveByName("paris, fr")
	assert.Equal(t, []string{"London, GB"}, list)

	// Removing a missing name changes nothing.
	list = s.RemoveByName("Berlin, DE")
	assert.Equal(t, []string{"London, GB"}, list)
}

func TestClearAll(t *testing.T) {
	s := newTestStore()
	s.RecordSearch(loc("Paris", "FR"))

	assert.Empty(t, s.ClearAll())
	assert.Empty(t, s.ListHistory())
}

func TestListHistoryDiscardsCorruptValue(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("search_history", `{"not":"an array"}`))
	s := New(kv, 5, units.Metric, ThemeLight, nil)

	assert.Empty(t, s.ListHistory())

	// The corrupt value is gone; the store starts clean afterwards.
	_, ok, err := kv.Get("search_history")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnitPreferenceDefaults(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, units.Metric, s.Unit())

	kv := NewMemoryKV()
	require.NoError(t, kv.Set("preferred_unit", "fahrenheit-ish"))
	s = New(kv, 5, units.Imperial, ThemeLight, nil)
	assert.Equal(t, units.Imperial, s.Unit())
}

func TestSetUnitRejectsInvalidWithoutSideEffect(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, 5, units.Metric, ThemeLight, nil)

	assert.Error(t, s.SetUnit(units.System("kelvin")))
	_, ok, err := kv.Get("preferred_unit")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetUnit(units.Imperial))
	assert.Equal(t, units.Imperial, s.Unit())
}

func TestThemePreference(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, ThemeLight, s.ThemePreference())

	require.NoError(t, s.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, s.ThemePreference())

	assert.Error(t, s.SetTheme(Theme("sepia")))
	assert.Equal(t, ThemeDark, s.ThemePreference())
}

// brokenKV fails every operation; the store must degrade, not panic.
type brokenKV struct{}

var errBroken = errors.New("kv broken")

func (brokenKV) Get(string) (string, bool, error) { return "", false, errBroken }
func (brokenKV) Set(string, string) error         { return errBroken }
func (brokenKV) Delete(string) error              { return errBroken }

func TestBrokenBackendDegradesToDefaults(t *testing.T) {
	s := New(brokenKV{}, 5, units.Metric, ThemeLight, nil)

	assert.False(t, s.IsAvailable())
	assert.Empty(t, s.ListHistory())
	assert.Equal(t, units.Metric, s.Unit())
	assert.Equal(t, ThemeLight, s.ThemePreference())

	// Mutations still return the in-request result.
	list := s.RecordSearch(loc("Paris", "FR"))
	assert.Equal(t, []string{"Paris, FR"}, list)
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, newTestStore().IsAvailable())
}
