// Command statuslogger is the Lambda subscribed to the invoice status topic.
// It logs every status change it receives.
package main

import (
	"invoice-service/internal/config"
	snsnotify "invoice-service/internal/notify/sns"
	"invoice-service/pkg/logger"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	logCfg := config.LoadLog()
	zl := logger.New(logger.Config{
		Level:  logCfg.Level,
		Format: logCfg.Format,
		Output: logCfg.Output,
	})
	defer func() { _ = zl.Sync() }()

	lambda.Start(snsnotify.NewConsumer(zl).Handle)
}
