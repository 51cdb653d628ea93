package config

import "time"

type Config struct {
	DataZone DataZoneConfig
	Lineage  LineageConfig
	Archive  ArchiveConfig
	Metrics  MetricsConfig
}

type DataZoneConfig struct {
	DomainID  string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Timeout   time.Duration
}

type LineageConfig struct {
	JobName     string
	Producer    string
	NATSServers []string
	NATSSubject string
}

type ArchiveConfig struct {
	Bucket         string
	Prefix         string
	Endpoint       string
	ForcePathStyle bool
}

type MetricsConfig struct {
	PushgatewayURL string
	Job            string
}
