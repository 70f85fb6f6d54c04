package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/crop-dashboard/internal/dashboard"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/store"
)

var validate = validator.New()

// Handler serves the dashboard API.
type Handler struct {
	sessions *store.SessionStore
	factory  dashboard.Factory
	fallback geo.Coordinate
}

func NewHandler(sessions *store.SessionStore, factory dashboard.Factory, fallback geo.Coordinate) *Handler {
	return &Handler{sessions: sessions, factory: factory, fallback: fallback}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", h.createSession)
	v1.Get("/sessions/:id", h.withSession(view))
	v1.Delete("/sessions/:id", h.deleteSession)

	v1.Put("/sessions/:id/input", h.withSession(setInput))
	v1.Post("/sessions/:id/submit", h.withSession(submit))
	v1.Post("/sessions/:id/refresh", h.withSession(refresh))
	v1.Post("/sessions/:id/retry", h.withSession(refresh))
	v1.Post("/sessions/:id/recommendations/retry", h.withSession(retryRecommendations))

	v1.Put("/sessions/:id/selection", h.withSession(selectCrop))
	v1.Delete("/sessions/:id/selection", h.withSession(clearSelection))
	v1.Put("/sessions/:id/metrics-tab", h.withSession(setMetricTab))

	v1.Get("/soil", h.oneShot(dashboard.KindSoil))
	v1.Get("/market", h.oneShot(dashboard.KindMarket))
	v1.Get("/overview", h.overview)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toHTTPError maps domain errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, dashboard.ErrUnknownCrop):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, dashboard.ErrNotReady):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, dashboard.ErrUnsupported),
		errors.Is(err, dashboard.ErrUnknownTab),
		errors.Is(err, dashboard.ErrUnknownKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// createSessionRequest is the body of POST /sessions.
type createSessionRequest struct {
	Kind string   `json:"kind" validate:"required,oneof=soil market"`
	Lat  *float64 `json:"lat" validate:"required_with=Lon"`
	Lon  *float64 `json:"lon" validate:"required_with=Lat"`
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	start := h.fallback
	if req.Lat != nil && req.Lon != nil {
		start = geo.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	}

	d, err := h.factory.New(dashboard.Kind(req.Kind), start)
	if err != nil {
		return toHTTPError(err)
	}
	sess := h.sessions.Create(d)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   sess.ID,
		"kind": sess.Kind(),
	})
}

func (h *Handler) deleteSession(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.Params("id")); err != nil {
		return toHTTPError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type sessionHandler func(c *fiber.Ctx, d dashboard.Dashboard) error

// withSession resolves :id and passes its dashboard to fn.
func (h *Handler) withSession(fn sessionHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := h.sessions.Get(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return fn(c, sess.Dashboard)
	}
}

func view(c *fiber.Ctx, d dashboard.Dashboard) error {
	return c.JSON(d.View())
}

// coordinateBody is the body of PUT /sessions/:id/input.
type coordinateBody struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

func setInput(c *fiber.Ctx, d dashboard.Dashboard) error {
	var req coordinateBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon must be numbers")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	d.SetInput(geo.Coordinate{Lat: *req.Lat, Lon: *req.Lon})
	return c.JSON(d.View())
}

func submit(c *fiber.Ctx, d dashboard.Dashboard) error {
	if c.QueryBool("async") {
		d.SubmitAsync(c.UserContext())
		return c.Status(fiber.StatusAccepted).JSON(d.View())
	}
	d.Submit(c.UserContext())
	return c.JSON(d.View())
}

func refresh(c *fiber.Ctx, d dashboard.Dashboard) error {
	if c.QueryBool("async") {
		d.RefreshAsync(c.UserContext())
		return c.Status(fiber.StatusAccepted).JSON(d.View())
	}
	d.Refresh(c.UserContext())
	return c.JSON(d.View())
}

func retryRecommendations(c *fiber.Ctx, d dashboard.Dashboard) error {
	s, ok := d.(*dashboard.Soil)
	if !ok {
		return toHTTPError(dashboard.ErrUnsupported)
	}
	if err := s.RetryRecommendations(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(s.View())
}

type selectionBody struct {
	Crop string `json:"crop" validate:"required"`
}

func selectCrop(c *fiber.Ctx, d dashboard.Dashboard) error {
	m, ok := d.(*dashboard.Market)
	if !ok {
		return toHTTPError(dashboard.ErrUnsupported)
	}
	var req selectionBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := m.Select(req.Crop); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(m.View())
}

func clearSelection(c *fiber.Ctx, d dashboard.Dashboard) error {
	m, ok := d.(*dashboard.Market)
	if !ok {
		return toHTTPError(dashboard.ErrUnsupported)
	}
	m.ClearSelection()
	return c.JSON(m.View())
}

type metricTabBody struct {
	Tab string `json:"tab" validate:"required,oneof=trends volatility prices"`
}

func setMetricTab(c *fiber.Ctx, d dashboard.Dashboard) error {
	m, ok := d.(*dashboard.Market)
	if !ok {
		return toHTTPError(dashboard.ErrUnsupported)
	}
	var req metricTabBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := m.SetMetricTab(dashboard.MetricTab(req.Tab)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(m.View())
}

// coordinateQuery holds the optional ?lat=&lon= pair. Both or neither.
type coordinateQuery struct {
	Lat string `validate:"required_with=Lon"`
	Lon string `validate:"required_with=Lat"`
}

func (h *Handler) parseCoordinateQuery(c *fiber.Ctx) (geo.Coordinate, error) {
	q := coordinateQuery{Lat: c.Query("lat"), Lon: c.Query("lon")}
	if err := validate.Struct(q); err != nil {
		return geo.Coordinate{}, err
	}
	if q.Lat == "" {
		return h.fallback, nil
	}
	return geo.ParseCoordinate(q.Lat, q.Lon)
}

// oneShot renders a throwaway dashboard of kind for the query coordinate.
func (h *Handler) oneShot(kind dashboard.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		coord, err := h.parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		d, err := h.factory.New(kind, coord)
		if err != nil {
			return toHTTPError(err)
		}
		d.Submit(c.UserContext())
		return c.JSON(d.View())
	}
}

// overview loads both dashboards for one coordinate concurrently. Fetch
// failures stay in each dashboard's state; the group itself never fails.
func (h *Handler) overview(c *fiber.Ctx) error {
	coord, err := h.parseCoordinateQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	kinds := []dashboard.Kind{dashboard.KindSoil, dashboard.KindMarket}
	boards := make([]dashboard.Dashboard, len(kinds))
	for i, kind := range kinds {
		if boards[i], err = h.factory.New(kind, coord); err != nil {
			return toHTTPError(err)
		}
	}

	g, ctx := errgroup.WithContext(c.UserContext())
	for _, d := range boards {
		d := d
		g.Go(func() error {
			d.Submit(ctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(fiber.Map{
		"coordinate": coord,
		"soil":       boards[0].View(),
		"market":     boards[1].View(),
	})
}
