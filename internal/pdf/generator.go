package pdf

import (
	"context"

	"invoice-service/internal/domain/client"
	"invoice-service/internal/domain/invoice"
	apperrors "invoice-service/pkg/errors"

	"go.uber.org/zap"
)

type InvoiceReader interface {
	Get(ctx context.Context, id, userID string) (*invoice.Invoice, error)
}

type ClientReader interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

type Converter interface {
	Convert(ctx context.Context, html, name string) ([]byte, error)
}

type ObjectStore interface {
	UploadPDF(ctx context.Context, objectKey string, body []byte) error
	PresignGet(ctx context.Context, objectKey string) (string, error)
}

// Generator renders an owned invoice to PDF, stores it and returns a
// temporary download link.
type Generator struct {
	invoices  InvoiceReader
	clients   ClientReader
	renderer  *Renderer
	converter Converter
	store     ObjectStore
	logger    *zap.Logger
}

func NewGenerator(invoices InvoiceReader, clients ClientReader, renderer *Renderer, converter Converter, store ObjectStore, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		invoices:  invoices,
		clients:   clients,
		renderer:  renderer,
		converter: converter,
		store:     store,
		logger:    logger,
	}
}

func (g *Generator) Generate(ctx context.Context, invoiceID, userID string) (string, error) {
	inv, err := g.invoices.Get(ctx, invoiceID, userID)
	if err != nil {
		return "", errFailedLoadInvoice(err)
	}
	if inv == nil {
		return "", apperrors.NotFound(errInvoiceNotFound)
	}

	// A deleted client only drops the customer block.
	c, err := g.clients.Get(ctx, inv.ClientID)
	if err != nil {
		g.logger.Warn("failed to load invoice client",
			zap.String("invoice_id", inv.ID),
			zap.String("client_id", inv.ClientID),
			zap.Error(err))
		c = nil
	}

	html, err := g.renderer.Render(inv, c)
	if err != nil {
		return "", err
	}

	data, err := g.converter.Convert(ctx, html, inv.ID)
	if err != nil {
		return "", errFailedConvert(err)
	}

	key := ObjectKey(inv.ID)
	if err := g.store.UploadPDF(ctx, key, data); err != nil {
		return "", errFailedUploadPDF(err)
	}

	url, err := g.store.PresignGet(ctx, key)
	if err != nil {
		return "", errFailedPresignPDF(err)
	}

	g.logger.Info("generated invoice PDF",
		zap.String("invoice_id", inv.ID),
		zap.String("object_key", key),
		zap.Int("bytes", len(data)))

	return url, nil
}
