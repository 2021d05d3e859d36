package handler

import (
	"net/http"

	"invoice-service/internal/domain/client"
	"invoice-service/internal/domain/invoice"

	"github.com/labstack/echo/v4"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func handleHTTPError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, msg)
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ClientResponse struct {
	Client *client.Client `json:"client"`
}

type ClientsResponse struct {
	Clients []*client.Client `json:"clients"`
}

type InvoiceResponse struct {
	Invoice *invoice.Invoice `json:"invoice"`
}

type InvoicesResponse struct {
	Invoices []*invoice.Invoice `json:"invoices"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type PDFResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
