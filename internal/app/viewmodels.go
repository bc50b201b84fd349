package app

import (
	"fmt"
	"time"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/store"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

// CurrentViewModel carries the formatted current-conditions fields.
type CurrentViewModel struct {
	LocationLabel string `json:"locationLabel"`
	DateLabel     string `json:"dateLabel"`
	ObservedTime  string `json:"observedTime"`
	Temperature   string `json:"temperature"`
	Description   string `json:"description"`
	Humidity      string `json:"humidity"`
	Wind          string `json:"wind"`
	Pressure      string `json:"pressure"`
	Visibility    string `json:"visibility"`
	IconKey       string `json:"iconKey"`
}

// ForecastDayViewModel is one row of the daily forecast strip.
type ForecastDayViewModel struct {
	DayName     string `json:"dayName"`
	ShortDate   string `json:"shortDate"`
	IconKey     string `json:"iconKey"`
	Description string `json:"description"`
	TempMax     string `json:"tempMax"`
	TempMin     string `json:"tempMin"`
}

// Dashboard is the full render state handed to the view layer.
type Dashboard struct {
	Unit     units.System           `json:"unit"`
	Theme    store.Theme            `json:"theme"`
	City     string                 `json:"city,omitempty"`
	Current  *CurrentViewModel      `json:"current,omitempty"`
	Forecast []ForecastDayViewModel `json:"forecast,omitempty"`
	History  []string               `json:"history"`
}

func buildCurrentViewModel(c weather.CurrentConditions, sys units.System, zone *time.Location) CurrentViewModel {
	var wind, visibility string
	if sys == units.Imperial {
		// Imperial responses already carry wind in mph.
		wind = fmt.Sprintf("%.1f mph", units.RoundTo(c.WindSpeed, 1))
		visibility = fmt.Sprintf("%.1f mi", units.MetersToMiles(float64(c.Visibility)))
	} else {
		wind = fmt.Sprintf("%.1f km/h", units.MetersPerSecondToKph(c.WindSpeed))
		visibility = fmt.Sprintf("%.1f km", units.MetersToKilometers(float64(c.Visibility)))
	}

	return CurrentViewModel{
		LocationLabel: c.Location.Label(),
		DateLabel:     units.FormatLongDate(c.ObservedAt, zone),
		ObservedTime:  units.FormatClockTime(c.ObservedAt, zone),
		Temperature:   fmt.Sprintf("%.0f%s", units.RoundTo(c.Temperature, 0), sys.TemperatureSuffix()),
		Description:   units.CapitalizeWords(c.ConditionText),
		Humidity:      fmt.Sprintf("%d%%", c.Humidity),
		Wind:          wind,
		Pressure:      fmt.Sprintf("%d hPa", c.Pressure),
		Visibility:    visibility,
		IconKey:       units.IconKey(c.ConditionCode),
	}
}

func buildForecastViewModels(daily []weather.ForecastSample, sys units.System, zone *time.Location) []ForecastDayViewModel {
	vms := make([]ForecastDayViewModel, 0, len(daily))
	suffix := sys.TemperatureSuffix()
	for _, s := range daily {
		vms = append(vms, ForecastDayViewModel{
			DayName:     units.FormatDayName(s.EpochSeconds, zone),
			ShortDate:   units.FormatShortDate(s.EpochSeconds, zone),
			IconKey:     units.IconKey(s.ConditionCode),
			Description: units.CapitalizeWords(s.ConditionText),
			TempMax:     fmt.Sprintf("%.0f%s", units.RoundTo(s.TempMax, 0), suffix),
			TempMin:     fmt.Sprintf("%.0f%s", units.RoundTo(s.TempMin, 0), suffix),
		})
	}
	return vms
}
