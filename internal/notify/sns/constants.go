package sns

import "fmt"

const (
	errTopicARNRequired          = "topic ARN is required"
	errFailedMarshalStatusFmt    = "failed to marshal status change: %w"
	errFailedPublishStatusFmt    = "failed to publish status change: %w"
	errFailedDecodeStatusFmt     = "failed to decode status change from message %s: %w"
	errMissingStatusChangeFields = "status change message is missing invoiceId or status"
)

var (
	errFailedMarshalStatus = func(err error) error { return fmt.Errorf(errFailedMarshalStatusFmt, err) }
	errFailedPublishStatus = func(err error) error { return fmt.Errorf(errFailedPublishStatusFmt, err) }
	errFailedDecodeStatus  = func(messageID string, err error) error {
		return fmt.Errorf(errFailedDecodeStatusFmt, messageID, err)
	}
)
