package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"zonedemo/pkg/bus"
	"zonedemo/pkg/datazone"
	"zonedemo/pkg/metrics"
	gos3 "zonedemo/pkg/s3"
	"zonedemo/pkg/telemetry"
	"zonedemo/services/catalog"
	"zonedemo/services/catalog/internal/config"
)

// app holds everything one zonectl invocation needs.
type app struct {
	svc               *catalog.Service
	logger            *log.Logger
	metrics           *metrics.Recorder
	cfg               config.Config
	bus               *bus.Bus
	shutdownTelemetry func(context.Context) error
}

func open(ctx context.Context) (*app, error) {
	shutdownTelemetry, logger, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	a := &app{logger: logger, shutdownTelemetry: shutdownTelemetry}

	cfg, err := config.Load()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.metrics = metrics.NewRecorder()

	client, err := datazone.NewClient(ctx, datazone.Options{
		Region:    cfg.DataZone.Region,
		Endpoint:  cfg.DataZone.Endpoint,
		AccessKey: cfg.DataZone.AccessKey,
		SecretKey: cfg.DataZone.SecretKey,
		Timeout:   cfg.DataZone.Timeout,
		Transport: telemetry.Transport,
		Metrics:   a.metrics,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init datazone client: %w", err)
	}

	var sinks []catalog.Sink
	if len(cfg.Lineage.NATSServers) > 0 {
		b, err := bus.New(cfg.Lineage.NATSServers, cfg.Lineage.NATSSubject)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		a.bus = b
		sinks = append(sinks, b)
	}
	if cfg.Archive.Bucket != "" {
		archive, err := gos3.NewArchive(ctx, cfg.Archive.Bucket, cfg.Archive.Prefix, gos3.Options{
			Region:         cfg.DataZone.Region,
			Endpoint:       cfg.Archive.Endpoint,
			AccessKey:      cfg.DataZone.AccessKey,
			SecretKey:      cfg.DataZone.SecretKey,
			ForcePathStyle: cfg.Archive.ForcePathStyle,
			Transport:      telemetry.Transport,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init lineage archive: %w", err)
		}
		sinks = append(sinks, archive)
	}

	svc, err := catalog.New(client, catalog.Config{
		DomainID: cfg.DataZone.DomainID,
		JobName:  cfg.Lineage.JobName,
		Producer: cfg.Lineage.Producer,
		Logger:   logger,
		Sinks:    sinks,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init catalog service: %w", err)
	}
	a.svc = svc
	return a, nil
}

// Close releases connections, pushes metrics and flushes traces.
func (a *app) Close() {
	a.bus.Close()

	if a.cfg.Metrics.PushgatewayURL != "" {
		if err := a.metrics.Push(a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job); err != nil {
			a.logger.Printf("WARN %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTelemetry(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "%s: telemetry shutdown error: %v\n", serviceName, err)
		}
	}
}

// run opens the app, traces fn under the command path and prints its result.
func run(cmd *cobra.Command, fn func(ctx context.Context, svc *catalog.Service) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, span := otel.Tracer(serviceName).Start(ctx, cmd.CommandPath())
	defer span.End()

	result, err := fn(ctx, a.svc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Printf("ERROR %s failed (trace_id=%s): %v", cmd.CommandPath(), telemetry.TraceID(ctx), err)
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	if v == nil {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
