package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envAWSRegion             = "REGION"
	envAWSEndpoint           = "AWS_ENDPOINT"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envClientsTable          = "CLIENTS_TABLE"
	envInvoicesTable         = "INVOICES_TABLE"
	envInvoicesOwnerIndex    = "INVOICES_OWNER_INDEX"
	envStatusChangedTopic    = "TOPIC_INVOICE_STATUS_CHANGED"
	envPublishTimeout        = "PUBLISH_TIMEOUT"
	envCognitoUserPoolID     = "COGNITO_USER_POOL_ID"
	envCognitoClientID       = "COGNITO_CLIENT_ID"
	envStackName             = "STACK_NAME"
	envInvoicesBucketName    = "INVOICES_BUCKET_NAME"
	envWkhtmltopdfPath       = "WKHTMLTOPDF_PATH"
	envPDFURLExpiry          = "PDF_URL_EXPIRY"
	envPDFRenderTimeout      = "PDF_RENDER_TIMEOUT"
	envLogLevel              = "LOG_LEVEL"
	envLogFormat             = "LOG_FORMAT"
	envLogOutput             = "LOG_OUTPUT"
	envStrictListResults     = "STRICT_LIST_RESULTS"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultClientsTable       = "ClientsTable"
	defaultInvoicesTable      = "InvoicesTable"
	defaultInvoicesOwnerIndex = "createdBy-index"
	defaultPublishTimeout     = 5 * time.Second
	defaultWkhtmltopdfPath    = "/opt/bin/wkhtmltopdf"
	defaultPDFURLExpiry       = time.Hour
	defaultPDFRenderTimeout   = 30 * time.Second
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	defaultLogOutput          = "stdout"

	errPortRequiredFmt          = "PORT must be set"
	errRegionRequiredFmt        = "REGION must be set"
	errTableRequiredFmt         = "%s must be set"
	errTopicRequiredFmt         = "TOPIC_INVOICE_STATUS_CHANGED must be set"
	errBucketRequiredFmt        = "INVOICES_BUCKET_NAME must be set"
	errCognitoRequiredFmt       = "either COGNITO_USER_POOL_ID and COGNITO_CLIENT_ID or STACK_NAME must be set"
	errAWSCredentialsPartialFmt = "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together"
	errInvalidConfigurationFmt  = "invalid configuration: %w"
)

type Config struct {
	Server       ServerConfig
	AWS          AWSConfig
	Tables       TablesConfig
	Notification NotificationConfig
	Cognito      CognitoConfig
	PDF          PDFConfig
	Log          LogConfig
	Features     FeatureConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AWSConfig selects region and credentials. Empty keys fall back to the SDK
// default credential chain; Endpoint points the SDK at a local emulator.
type AWSConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type TablesConfig struct {
	Clients           string
	Invoices          string
	InvoiceOwnerIndex string
}

type NotificationConfig struct {
	StatusChangedTopicARN string
	PublishTimeout        time.Duration
}

type CognitoConfig struct {
	UserPoolID string
	ClientID   string
	StackName  string
}

type PDFConfig struct {
	BucketName      string
	WkhtmltopdfPath string
	URLExpiry       time.Duration
	RenderTimeout   time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type FeatureConfig struct {
	// StrictListResults makes list queries fail when the store returns no
	// result collection instead of treating it as zero results.
	StrictListResults bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			Endpoint:        os.Getenv(envAWSEndpoint),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
		},
		Tables: TablesConfig{
			Clients:           getEnv(envClientsTable, defaultClientsTable),
			Invoices:          getEnv(envInvoicesTable, defaultInvoicesTable),
			InvoiceOwnerIndex: getEnv(envInvoicesOwnerIndex, defaultInvoicesOwnerIndex),
		},
		Notification: NotificationConfig{
			StatusChangedTopicARN: os.Getenv(envStatusChangedTopic),
			PublishTimeout:        getDurationEnv(envPublishTimeout, defaultPublishTimeout),
		},
		Cognito: CognitoConfig{
			UserPoolID: os.Getenv(envCognitoUserPoolID),
			ClientID:   os.Getenv(envCognitoClientID),
			StackName:  os.Getenv(envStackName),
		},
		PDF: PDFConfig{
			BucketName:      os.Getenv(envInvoicesBucketName),
			WkhtmltopdfPath: getEnv(envWkhtmltopdfPath, defaultWkhtmltopdfPath),
			URLExpiry:       getDurationEnv(envPDFURLExpiry, defaultPDFURLExpiry),
			RenderTimeout:   getDurationEnv(envPDFRenderTimeout, defaultPDFRenderTimeout),
		},
		Log: LoadLog(),
		Features: FeatureConfig{
			StrictListResults: getBoolEnv(envStrictListResults, false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

// LoadLog reads only the logging section; entrypoints that need nothing else
// (the topic consumer) use it directly.
func LoadLog() LogConfig {
	return LogConfig{
		Level:  getEnv(envLogLevel, defaultLogLevel),
		Format: getEnv(envLogFormat, defaultLogFormat),
		Output: getEnv(envLogOutput, defaultLogOutput),
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf(errRegionRequiredFmt)
	}

	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf(errAWSCredentialsPartialFmt)
	}

	if c.Tables.Clients == "" {
		return fmt.Errorf(errTableRequiredFmt, envClientsTable)
	}

	if c.Tables.Invoices == "" {
		return fmt.Errorf(errTableRequiredFmt, envInvoicesTable)
	}

	if c.Tables.InvoiceOwnerIndex == "" {
		return fmt.Errorf(errTableRequiredFmt, envInvoicesOwnerIndex)
	}

	if c.Notification.StatusChangedTopicARN == "" {
		return fmt.Errorf(errTopicRequiredFmt)
	}

	if c.PDF.BucketName == "" {
		return fmt.Errorf(errBucketRequiredFmt)
	}

	if !c.Cognito.HasPoolIDs() && c.Cognito.StackName == "" {
		return fmt.Errorf(errCognitoRequiredFmt)
	}

	return nil
}

// HasPoolIDs reports whether the user pool is configured directly rather
// than through stack outputs.
func (c CognitoConfig) HasPoolIDs() bool {
	return c.UserPoolID != "" && c.ClientID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, messages.invalidValue(key, value))
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
		fmt.Fprintln(os.Stderr, messages.invalidValue(key, value))
	}
	return defaultValue
}
