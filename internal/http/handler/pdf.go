package handler

import (
	"net/http"

	"invoice-service/internal/auth"
	"invoice-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

type PDFHandler struct {
	generator PDFGenerator
}

func NewPDFHandler(generator PDFGenerator) *PDFHandler {
	return &PDFHandler{generator: generator}
}

func (h *PDFHandler) GenerateInvoicePDF(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	id := c.Param(paramID)
	if err := validator.Identifier(id); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	url, err := h.generator.Generate(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PDFResponse{Message: msgPDFGenerated, URL: url})
}
