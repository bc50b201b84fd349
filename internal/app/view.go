package app

import "github.com/firmanfarelrichardo/weather-dashboard/internal/weather"

// View is the rendering boundary. The controller only ever hands it
// formatted view-models and presentation signals; it never reaches back into
// domain state.
type View interface {
	ShowLoading()
	HideLoading()
	ShowError(message string)
	RenderCurrent(vm CurrentViewModel)
	RenderForecastDays(vms []ForecastDayViewModel)
	RenderHistory(list []string)
	RenderSuggestions(list []weather.Location)
}

// NopView ignores every signal. Used where no interactive surface is attached.
type NopView struct{}

func (NopView) ShowLoading()                              {}
func (NopView) HideLoading()                              {}
func (NopView) ShowError(string)                          {}
func (NopView) RenderCurrent(CurrentViewModel)            {}
func (NopView) RenderForecastDays([]ForecastDayViewModel) {}
func (NopView) RenderHistory([]string)                    {}
func (NopView) RenderSuggestions([]weather.Location)      {}

var _ View = NopView{}
