package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and sends a verification email.
//
// @Summary      Register a new user
// @Tags         Login and Registration
// @Accept       json
// @Produce      json
// @Param        body  body      validation.UserCreate  true  "User registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  ErrorBody
// @Failure      422   {object}  ErrorBody
// @Router       /register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.UserCreate
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Login exchanges credentials for a bearer token. Accepts the OAuth2
// password form (username, password) or a JSON body.
//
// @Summary      Login
// @Tags         Login and Registration
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        username  formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  tokenResponse
// @Failure      400       {object}  ErrorBody
// @Failure      401       {object}  ErrorBody
// @Failure      429       {object}  ErrorBody
// @Router       /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.Login
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Identifier(), req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// VerifyEmail confirms ownership of the address with the emailed token.
//
// @Summary      Verify an email address
// @Tags         Login and Registration
// @Produce      json
// @Param        user_id  path      string  true  "User ID (UUID)"
// @Param        token    path      string  true  "Verification token"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  ErrorBody
// @Failure      422      {object}  ErrorBody
// @Router       /verify-email/{user_id}/{token} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), userID, c.Param("token")); err != nil {
		if errors.Is(err, domain.ErrInvalidVerificationToken) {
			metrics.EmailVerificationsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.EmailVerificationsTotal.WithLabelValues("verified").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Email verified successfully"})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	default:
		return "error"
	}
}

// userIDParam reads and canonicalizes the :user_id path parameter.
func userIDParam(c echo.Context) (string, error) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return "", domain.NewValidationError("user_id", "Input should be a valid UUID")
	}
	return id.String(), nil
}
