package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoice-service/internal/auth"
	"invoice-service/internal/domain/client"
	"invoice-service/internal/domain/invoice"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target, body, userID string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	if userID != "" {
		c.Set(auth.ContextKeyUserID, userID)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

type fakeClientRepo struct {
	clients    map[string]*client.Client
	lastFilter client.Filter
	lastUpdate client.Update
	deleted    []string
	err        error
}

func newFakeClientRepo(clients ...*client.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: map[string]*client.Client{}}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) List(_ context.Context, filter client.Filter) ([]*client.Client, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	out := []*client.Client{}
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Create(_ context.Context, c *client.Client) (*client.Client, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.clients[c.ID] = c
	return c, nil
}

func (r *fakeClientRepo) Get(_ context.Context, id string) (*client.Client, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.clients[id], nil
}

func (r *fakeClientRepo) Update(_ context.Context, id string, update client.Update) (*client.Client, error) {
	r.lastUpdate = update
	if r.err != nil {
		return nil, r.err
	}
	c := *r.clients[id]
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	r.clients[id] = &c
	return &c, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	delete(r.clients, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices   map[string]*invoice.Invoice
	lastUserID string
	lastFilter invoice.Filter
	lastUpdate invoice.Update
	created    *invoice.Invoice
	deleted    []string
	updateErr  error
}

func newFakeInvoiceRepo(invoices ...*invoice.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: map[string]*invoice.Invoice{}}
	for _, inv := range invoices {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) List(_ context.Context, userID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	r.lastUserID = userID
	r.lastFilter = filter
	out := []*invoice.Invoice{}
	for _, inv := range r.invoices {
		if inv.OwnedBy(userID) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	r.created = inv
	r.invoices[inv.ID] = inv
	return inv, nil
}

func (r *fakeInvoiceRepo) Get(_ context.Context, id, userID string) (*invoice.Invoice, error) {
	r.lastUserID = userID
	inv := r.invoices[id]
	if !inv.OwnedBy(userID) {
		return nil, nil
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, id, userID string, update invoice.Update) (*invoice.Invoice, error) {
	r.lastUserID = userID
	r.lastUpdate = update
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	inv := *r.invoices[id]
	if update.Status != nil {
		inv.Status = *update.Status
	}
	if update.Items != nil {
		inv.Items = *update.Items
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id, userID string) error {
	r.lastUserID = userID
	r.deleted = append(r.deleted, id)
	return nil
}
