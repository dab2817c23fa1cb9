package httpapi

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Dependencies are the services the HTTP layer needs.
type Dependencies struct {
	Weather *weather.Service
	Probes  *store.MemoryStore // optional
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Post("/", func(c *fiber.Ctx) error {
		var req weatherRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "request body must be JSON with a location field")
		}
		return handleWeather(c, deps.Weather, req)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		}
		if deps.Probes != nil {
			body["probes"] = deps.Probes.Latest()
		}
		return c.JSON(body)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return handleWeather(c, deps.Weather, weatherRequest{Location: c.Query("location")})
	})

	v1.Get("/probes", func(c *fiber.Ctx) error {
		if deps.Probes == nil {
			return fiber.NewError(fiber.StatusNotFound, "upstream probing is disabled")
		}

		// Without a range the most recent result is returned.
		if c.Query("from") == "" && c.Query("to") == "" {
			location := strings.TrimSpace(c.Query("location"))
			if location == "" {
				return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
			}
			latest, err := deps.Probes.GetLatest(location)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "no probe results for location")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to read probe results")
			}
			return c.JSON(latest)
		}

		var req probeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results, err := deps.Probes.GetRange(req.Location, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no probe results for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read probe results")
		}

		return c.JSON(fiber.Map{
			"location": req.Location,
			"from":     req.From,
			"to":       req.To,
			"results":  results,
		})
	})
}

// weatherRequest is the body of POST /.
type weatherRequest struct {
	Location string `json:"location" validate:"required"`
}

func handleWeather(c *fiber.Ctx, svc *weather.Service, req weatherRequest) error {
	req.Location = strings.TrimSpace(req.Location)
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, weather.ErrInvalidLocation.Error())
	}

	log.Printf("INFO: [%s] weather request received for %q", requestID(c), req.Location)

	resp, err := svc.GetWeather(c.UserContext(), req.Location)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrInvalidLocation):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case weather.IsUpstreamFailure(err):
			log.Printf("ERROR: [%s] upstream failure for %q: %v", requestID(c), req.Location, err)
			return fiber.NewError(fiber.StatusNotFound, "weather not found for requested location")
		default:
			log.Printf("ERROR: [%s] weather request for %q failed: %v", requestID(c), req.Location, err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
	}

	return c.JSON(resp)
}

// probeQuery holds query parameters for the probe history endpoint.
type probeQuery struct {
	Location string    `validate:"required"`
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (p *probeQuery) bind(c *fiber.Ctx) error {
	p.Location = c.Query("location")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	p.From = from
	p.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
