package handler

const (
	jsonKeyError = "error"

	paramID = "id"

	queryName     = "name"
	queryEmail    = "email"
	queryStatus   = "status"
	queryClientID = "clientId"
)

const (
	msgContentTypeJSONRequired = "content type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidInput            = "invalid input"
	msgClientNotFound          = "client not found"
	msgInvoiceNotFound         = "invoice not found"
	msgNoClientFields          = "at least one of name or email is required"
	msgNoInvoiceFields         = "at least one of status, invoiceNumber, dueDate or items is required"
	msgClientDeleted           = "client deleted"
	msgInvoiceDeleted          = "invoice deleted"
	msgUserCreatedFmt          = "user created: %s"
	msgUserAuthenticatedFmt    = "user authenticated: %s"
	msgPDFGenerated            = "PDF generated successfully"
)
