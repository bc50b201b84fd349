// Package httpapi exposes the dashboard controller over HTTP. It is one
// concrete view layer; the controller itself stays transport-agnostic.
package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/app"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(router *fiber.App, ctrl *app.Controller, svc app.WeatherService) {
	v1 := router.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(ctrl.Dashboard())
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var q searchQuery
		q.City = c.Query("city")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		dash, err := ctrl.Search(c.Context(), q.City)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.JSON(dash)
	})

	v1.Get("/suggest", func(c *fiber.Ctx) error {
		// Autocomplete never fails: bad input or provider trouble both
		// degrade to an empty list.
		locs := svc.Suggest(c.Context(), c.Query("q"), 5)
		if locs == nil {
			locs = []weather.Location{}
		}
		return c.JSON(locs)
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(historyPayload(ctrl.Dashboard().History))
	})

	v1.Delete("/history", func(c *fiber.Ctx) error {
		return c.JSON(historyPayload(ctrl.ClearHistory()))
	})

	v1.Delete("/history/:index", func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "history index must be an integer")
		}
		return c.JSON(historyPayload(ctrl.RemoveHistory(index)))
	})

	v1.Put("/preferences/unit", func(c *fiber.Ctx) error {
		dash, err := ctrl.ToggleUnit(c.Context())
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.JSON(dash)
	})

	v1.Put("/preferences/theme", func(c *fiber.Ctx) error {
		dash, err := ctrl.ToggleTheme()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(dash)
	})
}

type searchQuery struct {
	City string `validate:"required"`
}

func historyPayload(list []string) fiber.Map {
	if list == nil {
		list = []string{}
	}
	return fiber.Map{"history": list}
}

// statusFor maps controller/client failures onto HTTP statuses for this
// local API surface.
func statusFor(err error) int {
	var ue *app.UserError
	if errors.As(err, &ue) {
		if ue == app.ErrNotConfigured {
			return fiber.StatusServiceUnavailable
		}
		return fiber.StatusBadRequest
	}
	if kind, ok := weather.KindOf(err); ok {
		switch kind {
		case weather.KindCityNotFound:
			return fiber.StatusNotFound
		case weather.KindRateLimited:
			return fiber.StatusTooManyRequests
		case weather.KindInvalidCredential, weather.KindNetworkOrServer:
			return fiber.StatusBadGateway
		}
	}
	return fiber.StatusInternalServerError
}
