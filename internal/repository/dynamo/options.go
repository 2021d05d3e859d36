package dynamo

import (
	"time"

	"go.uber.org/zap"
)

type repositoryOptions struct {
	strictListResults bool
	logger            *zap.Logger
	publishTimeout    time.Duration
}

type RepositoryOption func(*repositoryOptions)

// WithStrictListResults makes List fail with ErrNoResults when the store
// returns no result collection instead of treating it as an empty list.
func WithStrictListResults(strict bool) RepositoryOption {
	return func(o *repositoryOptions) {
		o.strictListResults = strict
	}
}

func WithLogger(logger *zap.Logger) RepositoryOption {
	return func(o *repositoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPublishTimeout bounds a single status notification.
func WithPublishTimeout(d time.Duration) RepositoryOption {
	return func(o *repositoryOptions) {
		if d > 0 {
			o.publishTimeout = d
		}
	}
}

func applyOptions(opts []RepositoryOption) repositoryOptions {
	o := repositoryOptions{
		logger:         zap.NewNop(),
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
