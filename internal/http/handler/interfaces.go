package handler

import (
	"context"

	"invoice-service/internal/domain/client"
	"invoice-service/internal/domain/invoice"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// ClientHandler interfaces
type ClientRepository interface {
	List(ctx context.Context, filter client.Filter) ([]*client.Client, error)
	Create(ctx context.Context, c *client.Client) (*client.Client, error)
	Get(ctx context.Context, id string) (*client.Client, error)
	Update(ctx context.Context, id string, update client.Update) (*client.Client, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceHandler interfaces
type InvoiceRepository interface {
	List(ctx context.Context, userID string, filter invoice.Filter) ([]*invoice.Invoice, error)
	Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error)
	Get(ctx context.Context, id, userID string) (*invoice.Invoice, error)
	Update(ctx context.Context, id, userID string, update invoice.Update) (*invoice.Invoice, error)
	Delete(ctx context.Context, id, userID string) error
}

// UserHandler interfaces
type IdentityProvider interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// PDFHandler interfaces
type PDFGenerator interface {
	Generate(ctx context.Context, invoiceID, userID string) (string, error)
}
