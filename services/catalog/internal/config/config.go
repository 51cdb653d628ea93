package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

func Load() (Config, error) {
	cfg := Config{}

	cfg.DataZone.DomainID = strings.TrimSpace(os.Getenv("DATAZONE_DOMAIN_ID"))
	if cfg.DataZone.DomainID == "" {
		return Config{}, fmt.Errorf("DATAZONE_DOMAIN_ID is required")
	}
	cfg.DataZone.Region = getEnv("DATAZONE_REGION", getEnv("AWS_REGION", "us-east-1"))
	cfg.DataZone.Endpoint = strings.TrimSpace(os.Getenv("DATAZONE_ENDPOINT"))
	cfg.DataZone.AccessKey = os.Getenv("DATAZONE_ACCESS_KEY")
	cfg.DataZone.SecretKey = os.Getenv("DATAZONE_SECRET_KEY")
	if (cfg.DataZone.AccessKey == "") != (cfg.DataZone.SecretKey == "") {
		return Config{}, fmt.Errorf("DATAZONE_ACCESS_KEY and DATAZONE_SECRET_KEY must be set together")
	}
	if timeout := os.Getenv("DATAZONE_HTTP_TIMEOUT"); timeout != "" {
		secs, err := strconv.Atoi(timeout)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid DATAZONE_HTTP_TIMEOUT: %q", timeout)
		}
		cfg.DataZone.Timeout = time.Duration(secs) * time.Second
	} else {
		cfg.DataZone.Timeout = 30 * time.Second
	}

	cfg.Lineage.JobName = getEnv("LINEAGE_JOB_NAME", "DatazoneLineageJob")
	cfg.Lineage.Producer = os.Getenv("LINEAGE_PRODUCER")
	cfg.Lineage.NATSSubject = getEnv("LINEAGE_NATS_SUBJECT", "datazone.lineage.events")
	if servers := os.Getenv("LINEAGE_NATS_URLS"); servers != "" {
		parsed, err := parseServerList(servers)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LINEAGE_NATS_URLS: %w", err)
		}
		cfg.Lineage.NATSServers = parsed
	}

	cfg.Archive.Bucket = strings.TrimSpace(os.Getenv("LINEAGE_ARCHIVE_BUCKET"))
	cfg.Archive.Prefix = getEnv("LINEAGE_ARCHIVE_PREFIX", "lineage/")
	cfg.Archive.Endpoint = strings.TrimSpace(os.Getenv("S3_ENDPOINT"))
	cfg.Archive.ForcePathStyle = getEnvBool("S3_FORCE_PATH_STYLE", false)

	cfg.Metrics.PushgatewayURL = strings.TrimSpace(os.Getenv("METRICS_PUSHGATEWAY_URL"))
	cfg.Metrics.Job = getEnv("METRICS_JOB", "zonectl")

	return cfg, nil
}

// parseServerList splits a comma separated list of NATS URLs, dropping blanks
// and duplicates.
func parseServerList(spec string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(spec, ",") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		switch u.Scheme {
		case "nats", "tls":
		default:
			return nil, fmt.Errorf("unsupported scheme in %q", s)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("missing host in %q", s)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
