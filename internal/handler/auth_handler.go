package handler

import (
	"errors"
	"net/http"

	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 会員登録・ログイン・トークン更新・パスワード再設定
type AuthHandler struct {
	register *auth.RegisterUserUsecase
	login    *auth.LoginUsecase
	reset    *auth.PasswordResetUsecase
}

func NewAuthHandler(
	register *auth.RegisterUserUsecase,
	login *auth.LoginUsecase,
	reset *auth.PasswordResetUsecase,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, reset: reset}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/users", h.registerUser)

	g := e.Group("/auth")
	g.POST("/token", h.token)
	g.POST("/refresh_token", h.refreshToken)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/change-password", h.changePassword)
}

func (h *AuthHandler) registerUser(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.register.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat),
			errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrWeakPassword):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrAlreadyExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: out.User})
}

func (h *AuthHandler) token(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	pair, err := h.login.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) refreshToken(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	pair, err := h.login.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid refresh token"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.reset.Forgot(c.Request().Context(), req.Username); err != nil {
		return writeError(c, err)
	}

	//ユーザーの有無を漏らさないよう常に同じ応答
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.reset.Change(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid reset token"})
		case errors.Is(err, auth.ErrWeakPassword):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
