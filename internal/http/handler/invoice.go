package handler

import (
	"net/http"
	"strings"
	"time"

	"invoice-service/internal/auth"
	"invoice-service/internal/domain/invoice"
	apperrors "invoice-service/pkg/errors"
	"invoice-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	invoices InvoiceRepository
}

func NewInvoiceHandler(invoices InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type InvoiceItemRequest struct {
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// CreateInvoiceRequest has no createdBy; the owner always comes from the token.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber" validate:"required"`
	DueDate       string               `json:"dueDate" validate:"required,isodate"`
	ClientID      string               `json:"clientId" validate:"required"`
	Status        string               `json:"status" validate:"required"`
	Items         []InvoiceItemRequest `json:"items" validate:"dive"`
}

type UpdateInvoiceRequest struct {
	Status        *string               `json:"status" validate:"omitempty,min=1"`
	InvoiceNumber *string               `json:"invoiceNumber" validate:"omitempty,min=1"`
	DueDate       *string               `json:"dueDate" validate:"omitempty,isodate"`
	Items         *[]InvoiceItemRequest `json:"items" validate:"omitempty,dive"`
}

func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	invoices, err := h.invoices.List(c.Request().Context(), userID, invoice.Filter{
		Status:   optionalQuery(c, queryStatus),
		ClientID: optionalQuery(c, queryClientID),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, InvoicesResponse{Invoices: invoices})
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateInvoiceRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	req.Status = strings.TrimSpace(req.Status)

	if err := validator.Struct(req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.invoices.Create(c.Request().Context(), &invoice.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		DueDate:       req.DueDate,
		Status:        req.Status,
		ClientID:      req.ClientID,
		CreatedBy:     userID,
		CreatedAt:     time.Now().UTC(),
		Items:         toItems(req.Items),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, InvoiceResponse{Invoice: created})
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	found, err := h.invoices.Get(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	if found == nil {
		return apperrors.NotFound(msgInvoiceNotFound)
	}

	return c.JSON(http.StatusOK, InvoiceResponse{Invoice: found})
}

func (h *InvoiceHandler) UpdateInvoice(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var req UpdateInvoiceRequest
	if err := bindPartialJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Struct(req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	update := invoice.Update{
		Status:        req.Status,
		InvoiceNumber: req.InvoiceNumber,
		DueDate:       req.DueDate,
	}
	if req.Items != nil {
		items := toItems(*req.Items)
		update.Items = &items
	}
	if update.IsEmpty() {
		return respondError(c, http.StatusBadRequest, msgNoInvoiceFields)
	}

	updated, err := h.invoices.Update(c.Request().Context(), id, userID, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, InvoiceResponse{Invoice: updated})
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	found, err := h.invoices.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if found == nil {
		return apperrors.NotFound(msgInvoiceNotFound)
	}

	if err := h.invoices.Delete(ctx, id, userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: msgInvoiceDeleted})
}

func toItems(reqs []InvoiceItemRequest) []invoice.Item {
	items := make([]invoice.Item, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, invoice.Item{
			Description: r.Description,
			Price:       r.Price,
			Quantity:    r.Quantity,
		})
	}
	return items
}
