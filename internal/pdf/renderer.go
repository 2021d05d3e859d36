package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"invoice-service/internal/domain/client"
	"invoice-service/internal/domain/invoice"

	"github.com/shopspring/decimal"
)

const invoiceTemplate = `<html>
<head><meta charset="utf-8"><title>Invoice {{.Invoice.ID}}</title></head>
<body>
  <h1>Invoice {{.Invoice.ID}}</h1>
  <p>Number: {{.Invoice.InvoiceNumber}}</p>
  <p>Date: {{.Invoice.DueDate}}</p>
  {{- with .Client}}
  <h3>Customer Info</h3>
  <p>Name: {{.Name}}</p>
  <p>Email: {{.Email}}</p>
  <p>Address: {{.Address}}</p>
  <p>Phone number: {{.PhoneNumber}}</p>
  {{- end}}
  <table border="1">
    <thead>
      <tr><th>Description</th><th>Price</th><th>Quantity</th><th>Total</th></tr>
    </thead>
    <tbody>
      {{- range .Invoice.Items}}
      <tr>
        <td>{{.Description}}</td>
        <td>{{money .Price}}</td>
        <td>{{.Quantity}}</td>
        <td>{{.LineTotal.StringFixed 2}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <p>Total Amount: ${{.Total.StringFixed 2}}</p>
</body>
</html>
`

type pageData struct {
	Invoice *invoice.Invoice
	Client  *client.Client
	Total   decimal.Decimal
}

// Renderer produces the printable HTML page of an invoice.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"money": func(v float64) string {
			return decimal.NewFromFloat(v).StringFixed(2)
		},
	}).Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf(errFailedParseTemplateFmt, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render returns the page for inv. The customer block is left out when c is
// nil.
func (r *Renderer) Render(inv *invoice.Invoice, c *client.Client) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, pageData{Invoice: inv, Client: c, Total: inv.Total()}); err != nil {
		return "", errFailedRender(err)
	}
	return buf.String(), nil
}
