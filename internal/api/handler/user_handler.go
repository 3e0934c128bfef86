package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

const maxUpdateBody = 1 << 20

// UserHandler handles the administrative user endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users/.
//
// @Summary      Create a user
// @Tags         User Management Requires (Admin or Manager Roles)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validation.UserCreate  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  ErrorBody
// @Failure      401   {object}  ErrorBody
// @Failure      403   {object}  ErrorBody
// @Failure      422   {object}  ErrorBody
// @Router       /users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req validation.UserCreate
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List handles GET /users/.
//
// @Summary      List users
// @Tags         User Management Requires (Admin or Manager Roles)
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Number of users to skip"  default(0)
// @Param        limit  query     int  false  "Page size (max 100)"      default(10)
// @Success      200    {object}  userListResponse
// @Failure      401    {object}  ErrorBody
// @Failure      403    {object}  ErrorBody
// @Router       /users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	var skip, limit int
	if err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError(); err != nil {
		return domain.NewValidationError("", "skip and limit must be integers")
	}

	page, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(page))
}

// Get handles GET /users/:user_id.
//
// @Summary      Get a user
// @Tags         User Management Requires (Admin or Manager Roles)
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User ID (UUID)"
// @Success      200      {object}  userResponse
// @Failure      401      {object}  ErrorBody
// @Failure      403      {object}  ErrorBody
// @Failure      404      {object}  ErrorBody
// @Router       /users/{user_id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT /users/:user_id. Only the provided fields change.
//
// @Summary      Update a user
// @Tags         User Management Requires (Admin or Manager Roles)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string                 true  "User ID (UUID)"
// @Param        body     body      validation.UserUpdate  true  "Fields to change"
// @Success      200      {object}  userResponse
// @Failure      400      {object}  ErrorBody
// @Failure      401      {object}  ErrorBody
// @Failure      403      {object}  ErrorBody
// @Failure      404      {object}  ErrorBody
// @Failure      422      {object}  ErrorBody
// @Router       /users/{user_id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUpdateBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}
	req, err := validation.ParseUserUpdate(body)
	if err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/:user_id.
//
// @Summary      Delete a user
// @Tags         User Management Requires (Admin or Manager Roles)
// @Security     BearerAuth
// @Param        user_id  path  string  true  "User ID (UUID)"
// @Success      204
// @Failure      401  {object}  ErrorBody
// @Failure      403  {object}  ErrorBody
// @Failure      404  {object}  ErrorBody
// @Router       /users/{user_id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
