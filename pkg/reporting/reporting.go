// Package reporting captures unexpected errors raised while serving requests.
package reporting

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sealjuli/Library/pkg/logging"
)

// Reporter is an error-reporting sink.
type Reporter interface {
	Capture(ctx context.Context, err error, tags map[string]string)
	Close() error
}

// NewZap returns a Reporter that logs captured errors at error level.
func NewZap(logger *zap.Logger) Reporter {
	return &zapReporter{logger: logger.Named("Reporter")}
}

type zapReporter struct {
	logger *zap.Logger
}

func (r *zapReporter) Capture(ctx context.Context, err error, tags map[string]string) {
	fields := make([]zap.Field, 0, len(tags)+1)
	fields = append(fields, zap.Error(err))
	for k, v := range tags {
		fields = append(fields, zap.String(k, v))
	}
	logging.FromContext(ctx, r.logger).Error("captured error", fields...)
}

func (r *zapReporter) Close() error {
	return nil
}

// Nop discards everything.
func Nop() Reporter {
	return nopReporter{}
}

type nopReporter struct{}

func (nopReporter) Capture(context.Context, error, map[string]string) {}

func (nopReporter) Close() error { return nil }

// Multi fans captures out to every reporter.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

type multiReporter []Reporter

func (m multiReporter) Capture(ctx context.Context, err error, tags map[string]string) {
	for _, r := range m {
		r.Capture(ctx, err, tags)
	}
}

func (m multiReporter) Close() error {
	var err error
	for _, r := range m {
		err = multierr.Append(err, r.Close())
	}
	return err
}
