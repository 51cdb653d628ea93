package datazone

import (
	"context"
	"time"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"

	"zonedemo/pkg/metrics"
)

const metricsMiddlewareID = "ZonedemoCallMetrics"

// metricsMiddleware times every operation, retries included, and records the
// outcome on rec.
func metricsMiddleware(rec *metrics.Recorder) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Initialize.Add(middleware.InitializeMiddlewareFunc(metricsMiddlewareID,
			func(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
				middleware.InitializeOutput, middleware.Metadata, error,
			) {
				start := time.Now()
				out, md, err := next.HandleInitialize(ctx, in)
				rec.Observe(awsmiddleware.GetOperationName(ctx), time.Since(start), err)
				return out, md, err
			}), middleware.After)
	}
}
