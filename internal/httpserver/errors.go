package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/service"
)

// StandardError is the body of every error response.
type StandardError struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, StandardError{
		Timestamp: time.Now().UTC().Format(models.MomentLayout),
		Status:    code,
		Error:     http.StatusText(code),
		Message:   msg,
		Path:      c.Request().URL.Path,
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// fail logs err under event and maps it to the HTTP error returned to the
// client.
func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "resource not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "integrity violation", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "integrity violation")
	case errors.Is(err, models.ErrInvalidStatusCode):
		l.Error(event, "status", 500, "reason", "stored order status is invalid", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "invalid order status code")
	case errors.Is(err, models.ErrIncompleteItem):
		l.Error(event, "status", 500, "reason", "order item is incomplete", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "order item is incomplete")
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func badID(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "id is not a positive integer", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
}
