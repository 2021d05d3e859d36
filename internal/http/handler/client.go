package handler

import (
	"net/http"
	"strings"
	"time"

	"invoice-service/internal/domain/client"
	apperrors "invoice-service/pkg/errors"
	"invoice-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ClientHandler struct {
	clients ClientRepository
}

func NewClientHandler(clients ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type CreateClientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context(), client.Filter{
		Name:  optionalQuery(c, queryName),
		Email: optionalQuery(c, queryEmail),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClientsResponse{Clients: clients})
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req CreateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validator.Struct(req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.clients.Create(c.Request().Context(), &client.Client{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ClientResponse{Client: created})
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	found, err := h.clients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if found == nil {
		return apperrors.NotFound(msgClientNotFound)
	}

	return c.JSON(http.StatusOK, ClientResponse{Client: found})
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var req UpdateClientRequest
	if err := bindPartialJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Struct(req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	update := client.Update{Name: req.Name, Email: req.Email}
	if update.IsEmpty() {
		return respondError(c, http.StatusBadRequest, msgNoClientFields)
	}

	updated, err := h.clients.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClientResponse{Client: updated})
}

func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	found, err := h.clients.Get(ctx, id)
	if err != nil {
		return err
	}
	if found == nil {
		return apperrors.NotFound(msgClientNotFound)
	}

	if err := h.clients.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: msgClientDeleted})
}
