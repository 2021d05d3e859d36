package sns

import (
	"context"
	"encoding/json"
	"errors"

	"invoice-service/internal/domain/invoice"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Consumer receives status change notifications delivered by SNS and records
// them in the log.
type Consumer struct {
	logger *zap.Logger
}

func NewConsumer(logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{logger: logger}
}

// Handle logs every record of the event. A malformed record is logged and
// skipped so one bad message does not make SNS redeliver the whole batch.
func (c *Consumer) Handle(ctx context.Context, event events.SNSEvent) error {
	for _, record := range event.Records {
		change, err := Decode(record.SNS)
		if err != nil {
			c.logger.Error("invalid status change message",
				zap.String("message_id", record.SNS.MessageID),
				zap.Error(err))
			continue
		}

		c.logger.Info("invoice status changed",
			zap.String("message_id", record.SNS.MessageID),
			zap.String("topic_arn", record.SNS.TopicArn),
			zap.String("invoice_id", change.InvoiceID),
			zap.String("status", change.Status),
			zap.Time("published_at", record.SNS.Timestamp))
	}
	return nil
}

// Decode parses the message body of a single SNS delivery.
func Decode(entity events.SNSEntity) (invoice.StatusChanged, error) {
	var change invoice.StatusChanged
	if err := json.Unmarshal([]byte(entity.Message), &change); err != nil {
		return invoice.StatusChanged{}, errFailedDecodeStatus(entity.MessageID, err)
	}
	if change.InvoiceID == "" || change.Status == "" {
		return invoice.StatusChanged{}, errFailedDecodeStatus(entity.MessageID, errors.New(errMissingStatusChangeFields))
	}
	return change, nil
}
