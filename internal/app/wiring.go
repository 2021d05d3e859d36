package app

import (
	"context"
	"fmt"

	"invoice-service/internal/auth"
	"invoice-service/internal/config"
	httpserver "invoice-service/internal/http"
	"invoice-service/internal/identity/cognito"
	awsinfra "invoice-service/internal/infra/aws"
	snsnotify "invoice-service/internal/notify/sns"
	"invoice-service/internal/pdf"
	"invoice-service/internal/repository/dynamo"
	s3storage "invoice-service/internal/storage/s3"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	cip "github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sns"
	"go.uber.org/zap"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	sess, err := awsinfra.NewSession(&cfg.AWS)
	if err != nil {
		return nil, err
	}
	endpoint := awsinfra.EndpointConfig(&cfg.AWS)

	store := dynamo.NewStore(dynamodb.New(sess, endpoint...), logger)

	publisher, err := snsnotify.NewPublisher(sns.New(sess, endpoint...), cfg.Notification.StatusChangedTopicARN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create status publisher: %w", err)
	}

	repoOpts := []dynamo.RepositoryOption{
		dynamo.WithStrictListResults(cfg.Features.StrictListResults),
		dynamo.WithLogger(logger),
		dynamo.WithPublishTimeout(cfg.Notification.PublishTimeout),
	}
	clientRepo := dynamo.NewClientRepository(store, cfg.Tables.Clients, repoOpts...)
	invoiceRepo := dynamo.NewInvoiceRepository(store, cfg.Tables.Invoices, cfg.Tables.InvoiceOwnerIndex, publisher, repoOpts...)

	pool, err := resolvePool(ctx, sess, cfg)
	if err != nil {
		return nil, err
	}
	identity := cognito.NewService(cip.New(sess, endpoint...), pool, logger)

	keys, err := auth.NewCognitoKeySource(ctx, cfg.AWS.Region, pool.UserPoolID)
	if err != nil {
		return nil, err
	}
	verifier := auth.NewTokenVerifier(keys, cfg.AWS.Region, pool.UserPoolID, pool.ClientID)
	authMiddleware := auth.NewMiddleware(verifier, logger)

	objects := s3storage.NewClient(s3.New(sess, endpoint...), cfg.PDF.BucketName, cfg.PDF.URLExpiry)
	if cfg.AWS.Endpoint != "" {
		// Local emulators start without the bucket the stack would create.
		if err := objects.EnsureBucket(ctx, cfg.AWS.Region); err != nil {
			return nil, err
		}
	}

	renderer, err := pdf.NewRenderer()
	if err != nil {
		return nil, err
	}
	converter := pdf.NewWkhtmltopdfConverter(pdf.WkhtmltopdfConfig{
		BinaryPath: cfg.PDF.WkhtmltopdfPath,
		Timeout:    cfg.PDF.RenderTimeout,
		Logger:     logger,
	})
	generator := pdf.NewGenerator(invoiceRepo, clientRepo, renderer, converter, objects, logger)

	server := httpserver.NewServer(&httpserver.ServerDependencies{
		Config:         cfg,
		Logger:         logger,
		ClientRepo:     clientRepo,
		InvoiceRepo:    invoiceRepo,
		Identity:       identity,
		PDFGenerator:   generator,
		AuthMiddleware: authMiddleware,
	})

	return &Service{
		config: cfg,
		logger: logger,
		server: server,
	}, nil
}

func resolvePool(ctx context.Context, sess *session.Session, cfg *config.Config) (cognito.Pool, error) {
	if cfg.Cognito.HasPoolIDs() {
		return cognito.Pool{UserPoolID: cfg.Cognito.UserPoolID, ClientID: cfg.Cognito.ClientID}, nil
	}

	pool, err := cognito.ResolvePool(ctx, cloudformation.New(sess), cfg.Cognito.StackName)
	if err != nil {
		return cognito.Pool{}, fmt.Errorf("failed to resolve user pool from stack %s: %w", cfg.Cognito.StackName, err)
	}
	return pool, nil
}
