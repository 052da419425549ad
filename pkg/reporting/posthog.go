package reporting

import (
	"context"

	"github.com/posthog/posthog-go"
	"go.uber.org/zap"

	"github.com/sealjuli/Library/pkg/logging"
)

const (
	exceptionEvent = "$exception"
	defaultActor   = "library-api"
)

type posthogReporter struct {
	client posthog.Client
	logger *zap.Logger
}

// NewPostHog returns a Reporter that sends captured errors to PostHog as
// $exception events.
func NewPostHog(apiKey, endpoint string, logger *zap.Logger) (Reporter, error) {
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	return newPostHog(client, logger), nil
}

func newPostHog(client posthog.Client, logger *zap.Logger) *posthogReporter {
	return &posthogReporter{client: client, logger: logger.Named("PostHog")}
}

func (r *posthogReporter) Capture(ctx context.Context, err error, tags map[string]string) {
	capture := exceptionCapture(ctx, err, tags)
	if verr := capture.Validate(); verr != nil {
		r.logger.Warn("invalid exception capture", zap.Error(verr))
		return
	}
	if qerr := r.client.Enqueue(capture); qerr != nil {
		r.logger.Warn("failed to enqueue exception", zap.Error(qerr))
	}
}

func (r *posthogReporter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func exceptionCapture(ctx context.Context, err error, tags map[string]string) posthog.Capture {
	distinctID := logging.CorrelationID(ctx)
	if distinctID == "" {
		distinctID = defaultActor
	}

	props := posthog.NewProperties().
		Set("$exception_message", err.Error()).
		Set("$exception_type", "error")
	for k, v := range tags {
		props.Set(k, v)
	}

	return posthog.Capture{
		DistinctId: distinctID,
		Event:      exceptionEvent,
		Properties: props,
	}
}
