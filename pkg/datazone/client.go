// Package datazone builds the AWS SDK v2 DataZone client used by the catalog service.
package datazone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/datazone"

	"zonedemo/pkg/metrics"
)

const defaultTimeout = 30 * time.Second

// Options configures the DataZone client.
type Options struct {
	// Region defaults to us-east-1.
	Region string
	// Endpoint overrides the resolved service endpoint when set.
	Endpoint string
	// AccessKey and SecretKey select static credentials; the default
	// credential chain is used when both are empty.
	AccessKey string
	SecretKey string
	Timeout   time.Duration
	// Transport wraps the HTTP transport, e.g. with tracing.
	Transport func(http.RoundTripper) http.RoundTripper
	Metrics   *metrics.Recorder
}

// NewClient loads the shared AWS configuration and returns a DataZone client.
func NewClient(ctx context.Context, opts Options) (*datazone.Client, error) {
	if (opts.AccessKey == "") != (opts.SecretKey == "") {
		return nil, errors.New("datazone: access key and secret key must be set together")
	}

	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "us-east-1"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if opts.Transport != nil {
		transport = opts.Transport(transport)
	}

	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: timeout, Transport: transport}),
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("datazone: load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	return datazone.NewFromConfig(cfg, func(o *datazone.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		if opts.Metrics != nil {
			o.APIOptions = append(o.APIOptions, metricsMiddleware(opts.Metrics))
		}
	}), nil
}
