package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Created answers 201 with a Location header pointing at the new resource.
func Created(c echo.Context, location string, payload any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func BadRequest(c echo.Context, err error) error {
	return BadRequestMessage(c, err.Error())
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.DebugContext(c.Request().Context(), "Bad request", slog.String("error", msg), slog.String("module", "rest"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	slog.DebugContext(c.Request().Context(), "Not found", slog.String("error", msg), slog.String("module", "rest"))
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func BadGateway(c echo.Context, err error) error {
	slog.WarnContext(c.Request().Context(), "Upstream failure", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
}

func ServiceUnavailable(c echo.Context, err error) error {
	slog.WarnContext(c.Request().Context(), "Service unavailable", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(c.Request().Context(), "Internal error", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
