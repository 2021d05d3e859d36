package handler

import (
	"fmt"
	"net/http"
	"strings"

	"invoice-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	identity IdentityProvider
}

func NewUserHandler(identity IdentityProvider) *UserHandler {
	return &UserHandler{identity: identity}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.identity.Signup(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: fmt.Sprintf(msgUserCreatedFmt, req.Email)})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || validator.Password(req.Password) != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidInput)
	}

	token, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: fmt.Sprintf(msgUserAuthenticatedFmt, req.Email),
		Token:   token,
	})
}
