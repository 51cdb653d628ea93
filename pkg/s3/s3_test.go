package s3

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"zonedemo/pkg/openlineage"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "lineage/", want: "lineage/run-1.json"},
		{prefix: "lineage", want: "lineage/run-1.json"},
		{prefix: "", want: "run-1.json"},
	}
	for _, tt := range tests {
		a := &Archive{bucket: "b", prefix: tt.prefix}
		if got := a.Key("run-1"); got != tt.want {
			t.Fatalf("Key() with prefix %q = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestDeliverUploadsPayload(t *testing.T) {
	fake := &fakePutter{}
	a := &Archive{api: fake, bucket: "lineage-archive", prefix: "lineage/"}
	event := openlineage.CompleteEvent("dzd", "job", "run-1", "", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "a", "b")
	payload := []byte(`{"eventType":"COMPLETE"}`)

	if err := a.Deliver(context.Background(), event, payload); err != nil {
		t.Fatalf("Deliver() err=%v", err)
	}
	if aws.ToString(fake.input.Bucket) != "lineage-archive" || aws.ToString(fake.input.Key) != "lineage/run-1.json" {
		t.Fatalf("put target = %s/%s", aws.ToString(fake.input.Bucket), aws.ToString(fake.input.Key))
	}
	if string(fake.body) != string(payload) {
		t.Fatalf("body = %s", fake.body)
	}
	if fake.input.Metadata["sha256"] == "" || aws.ToString(fake.input.ChecksumSHA256) == "" {
		t.Fatalf("checksum metadata missing: %+v", fake.input.Metadata)
	}
}

func TestDeliverRequiresRunID(t *testing.T) {
	a := &Archive{api: &fakePutter{}, bucket: "b"}
	if err := a.Deliver(context.Background(), openlineage.RunEvent{}, nil); err == nil {
		t.Fatalf("Deliver() expected error")
	}
}

func TestEncodeSHA256(t *testing.T) {
	if _, err := encodeSHA256(""); err == nil {
		t.Fatalf("expected error for empty digest")
	}
	if _, err := encodeSHA256("zz"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	got, err := encodeSHA256("00ff")
	if err != nil || got != "AP8=" {
		t.Fatalf("encodeSHA256() = %q, %v", got, err)
	}
}
