package config

import (
	"reflect"
	"testing"
	"time"
)

func TestParseServerList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "dedupe and trim",
			input: "nats://a:4222, nats://b:4222,nats://a:4222,,tls://c:4222",
			want:  []string{"nats://a:4222", "nats://b:4222", "tls://c:4222"},
		},
		{
			name:    "unsupported scheme",
			input:   "http://a:4222",
			wantErr: true,
		},
		{
			name:    "missing host",
			input:   "nats://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseServerList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseServerList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseServerList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATAZONE_DOMAIN_ID", "DATAZONE_REGION", "AWS_REGION", "DATAZONE_ENDPOINT",
		"DATAZONE_ACCESS_KEY", "DATAZONE_SECRET_KEY", "DATAZONE_HTTP_TIMEOUT",
		"LINEAGE_JOB_NAME", "LINEAGE_PRODUCER", "LINEAGE_NATS_URLS", "LINEAGE_NATS_SUBJECT",
		"LINEAGE_ARCHIVE_BUCKET", "LINEAGE_ARCHIVE_PREFIX", "S3_ENDPOINT", "S3_FORCE_PATH_STYLE",
		"METRICS_PUSHGATEWAY_URL", "METRICS_JOB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATAZONE_DOMAIN_ID", "dzd_123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.DataZone.DomainID != "dzd_123" || cfg.DataZone.Region != "us-east-1" {
		t.Fatalf("datazone = %+v", cfg.DataZone)
	}
	if cfg.DataZone.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.DataZone.Timeout)
	}
	if cfg.Lineage.JobName != "DatazoneLineageJob" || cfg.Lineage.NATSSubject != "datazone.lineage.events" {
		t.Fatalf("lineage = %+v", cfg.Lineage)
	}
	if cfg.Archive.Bucket != "" || cfg.Archive.Prefix != "lineage/" {
		t.Fatalf("archive = %+v", cfg.Archive)
	}
	if cfg.Metrics.Job != "zonectl" {
		t.Fatalf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing domain", env: map[string]string{}},
		{name: "half credentials", env: map[string]string{"DATAZONE_DOMAIN_ID": "d", "DATAZONE_ACCESS_KEY": "AKIA"}},
		{name: "bad timeout", env: map[string]string{"DATAZONE_DOMAIN_ID": "d", "DATAZONE_HTTP_TIMEOUT": "-1"}},
		{name: "bad nats url", env: map[string]string{"DATAZONE_DOMAIN_ID": "d", "LINEAGE_NATS_URLS": "redis://x:1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("Load() expected error")
			}
		})
	}
}

func TestLoadRegionPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATAZONE_DOMAIN_ID", "d")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.DataZone.Region != "eu-west-1" {
		t.Fatalf("region = %q, want AWS_REGION fallback", cfg.DataZone.Region)
	}

	t.Setenv("DATAZONE_REGION", "us-west-2")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.DataZone.Region != "us-west-2" {
		t.Fatalf("region = %q, want DATAZONE_REGION", cfg.DataZone.Region)
	}
}
