package dynamo

import (
	"fmt"
	"time"
)

const (
	attrClientID      = "clientId"
	attrName          = "name"
	attrEmail         = "email"
	attrInvoiceID     = "invoiceId"
	attrInvoiceNumber = "invoiceNumber"
	attrDueDate       = "dueDate"
	attrStatus        = "status"
	attrCreatedBy     = "createdBy"
	attrItems         = "items"

	entityClients  = "clients"
	entityInvoices = "invoices"

	defaultPublishTimeout = 5 * time.Second

	errNoClientFields      = "no client fields to update"
	errNoInvoiceFields     = "no invoice fields to update"
	errClientNotFound      = "client not found"
	errInvoiceNotFound     = "invoice not found or not owned by user"
	errEmptyUpdate         = "update requires at least one field"
	errQueryOutputNotSlice = "query output must be a pointer to a slice"

	errFailedBuildExpressionFmt = "failed to build %s expression: %w"
	errFailedMarshalItemFmt     = "failed to marshal item: %w"
	errFailedUnmarshalItemFmt   = "failed to unmarshal item: %w"

	opGetItem    = "get item"
	opPutItem    = "put item"
	opUpdateItem = "update item"
	opDeleteItem = "delete item"
	opQuery      = "query"
	opScan       = "scan"

	errFailedListClientsFmt   = "failed to list clients: %w"
	errFailedCreateClientFmt  = "failed to create client: %w"
	errFailedGetClientFmt     = "failed to get client: %w"
	errFailedUpdateClientFmt  = "failed to update client: %w"
	errFailedDeleteClientFmt  = "failed to delete client: %w"
	errFailedListInvoicesFmt  = "failed to list invoices: %w"
	errFailedCreateInvoiceFmt = "failed to create invoice: %w"
	errFailedGetInvoiceFmt    = "failed to get invoice: %w"
	errFailedUpdateInvoiceFmt = "failed to update invoice: %w"
	errFailedDeleteInvoiceFmt = "failed to delete invoice: %w"
)

var (
	errFailedBuildExpression = func(kind string, err error) error { return fmt.Errorf(errFailedBuildExpressionFmt, kind, err) }
	errFailedMarshalItem     = func(err error) error { return fmt.Errorf(errFailedMarshalItemFmt, err) }
	errFailedUnmarshalItem   = func(err error) error { return fmt.Errorf(errFailedUnmarshalItemFmt, err) }
	errFailedListClients     = func(err error) error { return fmt.Errorf(errFailedListClientsFmt, err) }
	errFailedCreateClient    = func(err error) error { return fmt.Errorf(errFailedCreateClientFmt, err) }
	errFailedGetClient       = func(err error) error { return fmt.Errorf(errFailedGetClientFmt, err) }
	errFailedUpdateClient    = func(err error) error { return fmt.Errorf(errFailedUpdateClientFmt, err) }
	errFailedDeleteClient    = func(err error) error { return fmt.Errorf(errFailedDeleteClientFmt, err) }
	errFailedListInvoices    = func(err error) error { return fmt.Errorf(errFailedListInvoicesFmt, err) }
	errFailedCreateInvoice   = func(err error) error { return fmt.Errorf(errFailedCreateInvoiceFmt, err) }
	errFailedGetInvoice      = func(err error) error { return fmt.Errorf(errFailedGetInvoiceFmt, err) }
	errFailedUpdateInvoice   = func(err error) error { return fmt.Errorf(errFailedUpdateInvoiceFmt, err) }
	errFailedDeleteInvoice   = func(err error) error { return fmt.Errorf(errFailedDeleteInvoiceFmt, err) }
)
