// Package app orchestrates the dashboard: it drives the weather client,
// shapes results into view-models and keeps the session state consistent.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/forecast"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/logx"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/store"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

// WeatherService is the slice of the provider client the controller needs.
type WeatherService interface {
	FetchWeather(ctx context.Context, city string, sys units.System, lang string) (*weather.Snapshot, error)
	Suggest(ctx context.Context, prefix string, limit int) []weather.Location
	IsConfigured() bool
}

// UserError is a failure the controller surfaces to the user verbatim.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

var (
	// ErrInvalidInput rejects an empty search query.
	ErrInvalidInput = &UserError{Message: "please enter a city name"}
	// ErrNotConfigured blocks all provider traffic while the credential is absent.
	ErrNotConfigured = &UserError{Message: "weather API key is not configured"}
)

// State is the controller-owned session record. A failed operation leaves it
// exactly as it was.
type State struct {
	Unit     units.System
	Theme    store.Theme
	City     string // label of the currently displayed city; empty before the first search
	Snapshot *weather.Snapshot
}

// Config wires the controller's collaborators.
type Config struct {
	Service  WeatherService
	Store    *store.Store
	View     View
	Logger   logx.Logger
	Zone     *time.Location // calendar zone for day bucketing and labels
	Language string         // provider lang code for condition text
}

// Controller coordinates searches, preference toggles and history actions.
// All mutation happens under one lock; there is no other shared state.
type Controller struct {
	svc    WeatherService
	store  *store.Store
	view   View
	logger logx.Logger
	zone   *time.Location
	lang   string

	mu    sync.Mutex
	state State
}

// New creates a Controller, loading the persisted preferences into the
// initial session state.
func New(cfg Config) *Controller {
	if cfg.View == nil {
		cfg.View = NopView{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.Nop{}
	}
	if cfg.Zone == nil {
		cfg.Zone = time.Local
	}
	c := &Controller{
		svc:    cfg.Service,
		store:  cfg.Store,
		view:   cfg.View,
		logger: cfg.Logger,
		zone:   cfg.Zone,
		lang:   cfg.Language,
	}
	c.state = State{
		Unit:  cfg.Store.Unit(),
		Theme: cfg.Store.ThemePreference(),
	}
	return c
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dashboard returns the current render state without touching the network.
func (c *Controller) Dashboard() *Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dashboardLocked()
}

// Search validates the query, fetches weather for it and, on success,
// records the resolved location in the history and re-renders everything.
// On failure the previous session state stays untouched.
func (c *Controller) Search(ctx context.Context, query string) (*Dashboard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.view.ShowError(ErrInvalidInput.Message)
		return nil, ErrInvalidInput
	}
	return c.fetchCity(ctx, query)
}

// SelectHistory re-runs the full fetch for a clicked history entry.
func (c *Controller) SelectHistory(ctx context.Context, entry string) (*Dashboard, error) {
	return c.Search(ctx, entry)
}

// Refresh re-fetches the currently displayed city, if any. Used by the
// auto-refresh job; a no-op before the first successful search.
func (c *Controller) Refresh(ctx context.Context) (*Dashboard, error) {
	c.mu.Lock()
	city := c.state.City
	c.mu.Unlock()
	if city == "" {
		return c.Dashboard(), nil
	}
	return c.fetchCity(ctx, city)
}

func (c *Controller) fetchCity(ctx context.Context, city string) (*Dashboard, error) {
	if !c.svc.IsConfigured() {
		c.view.ShowError(ErrNotConfigured.Message)
		return nil, ErrNotConfigured
	}

	c.mu.Lock()
	unit := c.state.Unit
	c.mu.Unlock()

	c.view.ShowLoading()
	snap, err := c.svc.FetchWeather(ctx, city, unit, c.lang)
	c.view.HideLoading()
	if err != nil {
		c.logger.Warnf("app: fetch for %q failed: %v", city, err)
		c.view.ShowError(err.Error())
		return nil, err
	}

	history := c.store.RecordSearch(snap.Location)

	c.mu.Lock()
	c.state.City = snap.Location.Label()
	c.state.Snapshot = snap
	dash := c.dashboardLocked()
	dash.History = history
	c.mu.Unlock()

	if dash.Current != nil {
		c.view.RenderCurrent(*dash.Current)
	}
	c.view.RenderForecastDays(dash.Forecast)
	c.view.RenderHistory(dash.History)
	return dash, nil
}

// ToggleUnit flips the unit system, persists it, and re-fetches the current
// city under the new unit. Before any search it only updates the preference.
func (c *Controller) ToggleUnit(ctx context.Context) (*Dashboard, error) {
	c.mu.Lock()
	next := units.Metric
	if c.state.Unit == units.Metric {
		next = units.Imperial
	}
	if err := c.store.SetUnit(next); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state.Unit = next
	city := c.state.City
	c.mu.Unlock()

	if city == "" {
		return c.Dashboard(), nil
	}
	return c.fetchCity(ctx, city)
}

// ToggleTheme flips the theme and persists it. No network activity.
func (c *Controller) ToggleTheme() (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := store.ThemeLight
	if c.state.Theme == store.ThemeLight {
		next = store.ThemeDark
	}
	if err := c.store.SetTheme(next); err != nil {
		return nil, err
	}
	c.state.Theme = next
	return c.dashboardLocked(), nil
}

// RemoveHistory removes the entry at index and re-renders the list. It never
// re-fetches weather.
func (c *Controller) RemoveHistory(index int) []string {
	list := c.store.RemoveAt(index)
	c.view.RenderHistory(list)
	return list
}

// ClearHistory empties the history list and re-renders it.
func (c *Controller) ClearHistory() []string {
	list := c.store.ClearAll()
	c.view.RenderHistory(list)
	return list
}

// dashboardLocked shapes the session state into a Dashboard. Caller holds c.mu.
func (c *Controller) dashboardLocked() *Dashboard {
	dash := &Dashboard{
		Unit:    c.state.Unit,
		Theme:   c.state.Theme,
		City:    c.state.City,
		History: c.store.ListHistory(),
	}
	if c.state.Snapshot != nil {
		vm := buildCurrentViewModel(c.state.Snapshot.Current, c.state.Unit, c.zone)
		dash.Current = &vm
		daily := forecast.Bucketize(c.state.Snapshot.Forecast, c.zone)
		dash.Forecast = buildForecastViewModels(daily, c.state.Unit, c.zone)
	}
	return dash
}
