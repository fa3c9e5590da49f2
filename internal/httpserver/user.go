package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/course_shop/internal/logging"
	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_users")

	users, err := h.Svc.FindAll(ctx)
	if err != nil {
		return fail(l, "get_users_failed", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := parseID(c)
	if err != nil {
		return badID(l, "get_user_failed", err)
	}

	user, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return fail(l, "get_user_failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_user")

	var user models.User
	if err := c.Bind(&user); err != nil {
		l.Warn("create_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	created, err := h.Svc.Insert(ctx, &user)
	if err != nil {
		return fail(l, "create_user_failed", err)
	}

	c.Response().Header().Set(echo.HeaderLocation, location(c, created.ID))
	l.Info("create_user_success", "user_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_user")

	id, err := parseID(c)
	if err != nil {
		return badID(l, "update_user_failed", err)
	}

	var user models.User
	if err := c.Bind(&user); err != nil {
		l.Warn("update_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.Update(ctx, id, &user)
	if err != nil {
		return fail(l, "update_user_failed", err)
	}

	l.Info("update_user_success", "user_id", id)
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete_user")

	id, err := parseID(c)
	if err != nil {
		return badID(l, "delete_user_failed", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_user_failed", err)
	}

	l.Info("delete_user_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}

// location is the absolute URL of the created resource under the request
// path.
func location(c echo.Context, id uint) string {
	path := strings.TrimSuffix(c.Request().URL.Path, "/")
	return c.Scheme() + "://" + c.Request().Host + path + "/" + strconv.FormatUint(uint64(id), 10)
}
