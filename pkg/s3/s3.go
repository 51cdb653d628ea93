package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"zonedemo/pkg/openlineage"
)

// Options configures the archive client.
type Options struct {
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
	Transport      func(http.RoundTripper) http.RoundTripper
}

// Archive stores submitted lineage run events as JSON objects.
type Archive struct {
	api    putter
	bucket string
	prefix string
}

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewArchive initialises an Archive writing to bucket under prefix.
func NewArchive(ctx context.Context, bucket, prefix string, opts Options) (*Archive, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	if (opts.AccessKey == "") != (opts.SecretKey == "") {
		return nil, errors.New("s3 access key and secret key must be set together")
	}

	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	var transport http.RoundTripper = http.DefaultTransport
	if opts.Transport != nil {
		transport = opts.Transport(transport)
	}

	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second, Transport: transport}),
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.ForcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &Archive{api: client, bucket: bucket, prefix: prefix}, nil
}

// Name identifies the sink in logs.
func (a *Archive) Name() string {
	return "s3://" + a.bucket
}

// Key returns the object key the run with runID is stored under.
func (a *Archive) Key(runID string) string {
	return path.Join(strings.TrimSuffix(a.prefix, "/"), runID+".json")
}

// Deliver uploads the serialized event with checksum metadata.
func (a *Archive) Deliver(ctx context.Context, event openlineage.RunEvent, payload []byte) error {
	if a == nil {
		return errors.New("nil archive")
	}
	if event.Run.ID == "" {
		return errors.New("run id is required")
	}

	sum := sha256.Sum256(payload)
	digest := hex.EncodeToString(sum[:])
	checksum, err := encodeSHA256(digest)
	if err != nil {
		return err
	}

	key := a.Key(event.Run.ID)
	size := int64(len(payload))
	_, err = a.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            &a.bucket,
		Key:               &key,
		Body:              bytes.NewReader(payload),
		ContentLength:     &size,
		ContentType:       aws.String("application/json"),
		ChecksumAlgorithm: s3types.ChecksumAlgorithmSha256,
		ChecksumSHA256:    &checksum,
		Metadata: map[string]string{
			"sha256":     digest,
			"event-type": string(event.EventType),
			"job":        event.Job.Name,
		},
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func encodeSHA256(hexDigest string) (string, error) {
	if hexDigest == "" {
		return "", errors.New("sha256 digest required")
	}
	raw, err := hex.DecodeString(hexDigest)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
