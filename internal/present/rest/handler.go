package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/makweb/addressapi/internal/domain"
	"github.com/makweb/addressapi/internal/present/rest/presenter"
	"github.com/makweb/addressapi/internal/service"
	"github.com/makweb/addressapi/internal/usecase"
)

type Handler struct {
	address *usecase.AddressUsecase
	signal  *service.SignalService
}

// NewHandler builds the REST handler. signal may be nil, which disables the
// realtime endpoint.
func NewHandler(
	address *usecase.AddressUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		address: address,
		signal:  signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)

	g := e.Group("/api/addresses")
	g.GET("", h.handleList)
	g.POST("", h.handleCreate)
	g.GET("/search", h.handleSearch)
	g.GET("/distance", h.handleDistance)
	g.GET("/realtime", h.handleRealtime)
	g.GET("/:id", h.handleGet)
	g.PUT("/:id", h.handleUpdate)
	g.DELETE("/:id", h.handleDelete)
}

func (h *Handler) handleHealth(c echo.Context) error {
	if err := h.address.Ping(c.Request().Context()); err != nil {
		return presenter.ServiceUnavailable(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleList(c echo.Context) error {
	addresses, err := h.address.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, addresses)
}

func (h *Handler) handleGet(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	address, err := h.address.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, address)
}

func (h *Handler) handleCreate(c echo.Context) error {
	var address domain.Address
	if err := c.Bind(&address); err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.address.Create(c.Request().Context(), address)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Created(c, "/api/addresses/"+strconv.FormatInt(created.AddressID, 10), created)
}

func (h *Handler) handleUpdate(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var address domain.Address
	if err := c.Bind(&address); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.address.Update(c.Request().Context(), id, address); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDelete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	if err := h.address.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	column := c.QueryParam("column")
	comparator := c.QueryParam("comparator")
	order := c.QueryParam("order")

	addresses, err := h.address.Search(ctx, column, comparator, order)
	if err != nil {
		return h.fail(c, err)
	}
	if len(addresses) == 0 {
		return presenter.NotFound(c, "no addresses matched")
	}
	return presenter.OK(c, addresses)
}

func (h *Handler) handleDistance(c echo.Context) error {
	ctx := c.Request().Context()

	fromStr := c.QueryParam("from")
	toStr := c.QueryParam("to")
	if fromStr == "" || toStr == "" {
		return presenter.BadRequestMessage(c, "from and to parameters are required")
	}
	from, err := parseID(fromStr)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid from parameter")
	}
	to, err := parseID(toStr)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid to parameter")
	}

	distance, err := h.address.Distance(ctx, from, to)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, distance)
}

func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrGeocodeNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrInvalidFilterField),
		errors.Is(err, domain.ErrInvalidFilterValue),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrIDMismatch):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrLookupFailed),
		errors.Is(err, domain.ErrInvalidDistance):
		return presenter.BadGateway(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Request struct {
	Type string `json:"type"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return presenter.ServiceUnavailable(c, errors.New("realtime events are disabled"))
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.AddressEvent)
	go func() {
		if err := h.signal.Realtime(ctx, output); err != nil {
			slog.ErrorContext(
				ctx, "Realtime subscription failed",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
			cancel()
		}
	}()

	go func() {
		defer cancel()
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
