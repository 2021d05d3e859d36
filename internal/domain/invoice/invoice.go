package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

// Invoice belongs to the user that created it. CreatedBy is assigned from the
// authenticated identity and never changes.
type Invoice struct {
	ID            string    `json:"invoiceId" dynamodbav:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber" dynamodbav:"invoiceNumber"`
	DueDate       string    `json:"dueDate" dynamodbav:"dueDate"`
	Status        string    `json:"status" dynamodbav:"status"`
	ClientID      string    `json:"clientId" dynamodbav:"clientId"`
	CreatedBy     string    `json:"createdBy" dynamodbav:"createdBy"`
	CreatedAt     time.Time `json:"createdAt" dynamodbav:"createdAt"`
	Items         []Item    `json:"items" dynamodbav:"items"`
}

type Item struct {
	Description string  `json:"description" dynamodbav:"description"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Quantity    int     `json:"quantity" dynamodbav:"quantity"`
}

// LineTotal is price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals. It is derived on demand and never stored.
func (inv *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OwnedBy reports whether userID created the invoice.
func (inv *Invoice) OwnedBy(userID string) bool {
	return inv != nil && userID != "" && inv.CreatedBy == userID
}

type Filter struct {
	Status   *string
	ClientID *string
}

// Update lists the fields an owner may change. CreatedBy, ClientID and
// CreatedAt are deliberately absent.
type Update struct {
	Status        *string
	InvoiceNumber *string
	DueDate       *string
	Items         *[]Item
}

func (u Update) IsEmpty() bool {
	return u.Status == nil && u.InvoiceNumber == nil && u.DueDate == nil && u.Items == nil
}

// StatusChanged is the payload published when an invoice status is updated.
type StatusChanged struct {
	InvoiceID string `json:"invoiceId"`
	Status    string `json:"status"`
}
