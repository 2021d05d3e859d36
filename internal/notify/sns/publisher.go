package sns

import (
	"context"
	"encoding/json"
	"errors"

	"invoice-service/internal/domain/invoice"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"go.uber.org/zap"
)

// Publisher sends invoice status changes to a single SNS topic. There is no
// retry; callers decide whether a failed publish matters.
type Publisher struct {
	svc      snsiface.SNSAPI
	topicARN string
	logger   *zap.Logger
}

func NewPublisher(svc snsiface.SNSAPI, topicARN string, logger *zap.Logger) (*Publisher, error) {
	if topicARN == "" {
		return nil, errors.New(errTopicARNRequired)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{svc: svc, topicARN: topicARN, logger: logger}, nil
}

// PublishStatusChanged publishes {"invoiceId","status"} as the message body.
func (p *Publisher) PublishStatusChanged(ctx context.Context, invoiceID, status string) error {
	body, err := json.Marshal(invoice.StatusChanged{InvoiceID: invoiceID, Status: status})
	if err != nil {
		return errFailedMarshalStatus(err)
	}

	out, err := p.svc.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return errFailedPublishStatus(err)
	}

	p.logger.Debug("published invoice status change",
		zap.String("invoice_id", invoiceID),
		zap.String("status", status),
		zap.String("message_id", aws.StringValue(out.MessageId)))

	return nil
}
