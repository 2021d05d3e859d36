package pdf

import (
	"fmt"
	"time"
)

const (
	defaultBinaryPath    = "/opt/bin/wkhtmltopdf"
	defaultRenderTimeout = 30 * time.Second
	waitDelay            = time.Second
	objectKeyFmt         = "invoice-%s.pdf"

	errInvoiceNotFound        = "invoice not found"
	errEmptyHTML              = "HTML content is empty"
	errRenderTimeoutFmt       = "PDF rendering timed out after %v"
	errFailedRenderFmt        = "failed to render invoice HTML: %w"
	errFailedConvertFmt       = "failed to convert invoice to PDF: %w"
	errFailedRunConverterFmt  = "wkhtmltopdf failed: %w: %s"
	errFailedTempFileFmt      = "failed to prepare temp file: %w"
	errFailedReadPDFFmt       = "failed to read generated PDF: %w"
	errFailedLoadInvoiceFmt   = "failed to load invoice: %w"
	errFailedUploadPDFFmt     = "failed to upload invoice PDF: %w"
	errFailedPresignPDFFmt    = "failed to presign invoice PDF: %w"
	errFailedParseTemplateFmt = "failed to parse invoice template: %w"
)

var (
	errFailedRender       = func(err error) error { return fmt.Errorf(errFailedRenderFmt, err) }
	errFailedConvert      = func(err error) error { return fmt.Errorf(errFailedConvertFmt, err) }
	errFailedTempFile     = func(err error) error { return fmt.Errorf(errFailedTempFileFmt, err) }
	errFailedReadPDF      = func(err error) error { return fmt.Errorf(errFailedReadPDFFmt, err) }
	errFailedLoadInvoice  = func(err error) error { return fmt.Errorf(errFailedLoadInvoiceFmt, err) }
	errFailedUploadPDF    = func(err error) error { return fmt.Errorf(errFailedUploadPDFFmt, err) }
	errFailedPresignPDF   = func(err error) error { return fmt.Errorf(errFailedPresignPDFFmt, err) }
	errFailedRunConverter = func(err error, stderr string) error {
		return fmt.Errorf(errFailedRunConverterFmt, err, stderr)
	}
)

// ObjectKey names the stored PDF of an invoice.
func ObjectKey(invoiceID string) string {
	return fmt.Sprintf(objectKeyFmt, invoiceID)
}
