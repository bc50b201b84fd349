// Package units holds the pure conversion and formatting helpers shared by
// the controller and view layer.
package units

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// System selects between the two supported measurement systems.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Valid reports whether s is one of the supported systems.
func (s System) Valid() bool {
	return s == Metric || s == Imperial
}

// TemperatureSuffix returns the display suffix for temperatures in s.
func (s System) TemperatureSuffix() string {
	if s == Imperial {
		return "°F"
	}
	return "°C"
}

// RoundTo rounds half away from zero at the given decimal precision.
func RoundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// MetersToKilometers converts meters to kilometers, rounded to 1 decimal.
func MetersToKilometers(m float64) float64 {
	return RoundTo(m/1000, 1)
}

// MetersToMiles converts meters to miles, rounded to 1 decimal.
func MetersToMiles(m float64) float64 {
	return RoundTo(m/1609.344, 1)
}

// MetersPerSecondToKph converts m/s to km/h, rounded to 1 decimal.
func MetersPerSecondToKph(ms float64) float64 {
	return RoundTo(ms*3.6, 1)
}

// MetersPerSecondToMph converts m/s to mph, rounded to 1 decimal.
func MetersPerSecondToMph(ms float64) float64 {
	return RoundTo(ms*2.236936, 1)
}

// FormatLongDate renders an epoch timestamp as e.g. "Monday, 2 January 2006"
// in the given zone.
func FormatLongDate(epochSeconds int64, loc *time.Location) string {
	return at(epochSeconds, loc).Format("Monday, 2 January 2006")
}

// FormatShortDate renders an epoch timestamp as e.g. "2 Jan" in the given zone.
func FormatShortDate(epochSeconds int64, loc *time.Location) string {
	return at(epochSeconds, loc).Format("2 Jan")
}

// FormatDayName renders the weekday name of an epoch timestamp in the given zone.
func FormatDayName(epochSeconds int64, loc *time.Location) string {
	return at(epochSeconds, loc).Format("Monday")
}

// FormatClockTime renders an epoch timestamp as "15:04" in the given zone.
func FormatClockTime(epochSeconds int64, loc *time.Location) string {
	return at(epochSeconds, loc).Format("15:04")
}

func at(epochSeconds int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epochSeconds, 0).In(loc)
}

// CapitalizeWords title-cases each whitespace-separated token. Empty input
// yields the empty string.
func CapitalizeWords(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	for i, f := range fields {
		runes := []rune(f)
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}

// IconKey maps an OpenWeather icon code (e.g. "10d") to a display icon key.
// Unknown codes fall back to "cloud"; the function never fails.
func IconKey(code string) string {
	if len(code) < 2 {
		return "cloud"
	}
	switch code[:2] {
	case "01":
		return "sun"
	case "02":
		return "cloud-sun"
	case "03", "04":
		return "cloud"
	case "09":
		return "cloud-showers-heavy"
	case "10":
		return "cloud-rain"
	case "11":
		return "bolt"
	case "13":
		return "snowflake"
	case "50":
		return "smog"
	default:
		return "cloud"
	}
}
