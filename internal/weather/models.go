package weather

import "fmt"

// Location is a geocoded place. Immutable once constructed; Name+Country is
// the case-insensitive identity used by the history list.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label returns the display string "City, CC".
func (l Location) Label() string {
	if l.Country == "" {
		return l.Name
	}
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

// CurrentConditions is one snapshot of the provider's current-weather response.
// Temperature and wind speed are in the unit system the request asked for.
type CurrentConditions struct {
	Location      Location `json:"location"`
	ObservedAt    int64    `json:"observedAt"` // epoch seconds
	Temperature   float64  `json:"temperature"`
	Humidity      int      `json:"humidityPercent"`
	WindSpeed     float64  `json:"windSpeed"`
	Pressure      int      `json:"pressureHpa"`
	Visibility    int      `json:"visibilityMeters"`
	ConditionCode string   `json:"conditionCode"`
	ConditionText string   `json:"conditionText"`
}

// ForecastSample is one element of the raw 3-hour forecast series.
type ForecastSample struct {
	EpochSeconds  int64   `json:"epochSeconds"`
	TempMin       float64 `json:"tempMin"`
	TempMax       float64 `json:"tempMax"`
	ConditionCode string  `json:"conditionCode"`
	ConditionText string  `json:"conditionText"`
}

// Snapshot bundles everything one successful fetch produced.
type Snapshot struct {
	Current   CurrentConditions `json:"current"`
	Forecast  []ForecastSample  `json:"forecast"`
	Location  Location          `json:"resolvedLocation"`
	FetchedAt int64             `json:"fetchedAtMillis"`
}
