package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"

	"zonedemo/pkg/openlineage"
)

// LineageEvent is a stored lineage event together with its payload.
type LineageEvent struct {
	ID               string     `json:"id"`
	DomainID         string     `json:"domainId"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	EventTime        *time.Time `json:"eventTime,omitempty"`
	ProcessingStatus string     `json:"processingStatus,omitempty"`
	Payload          []byte     `json:"-"`
}

// RunEvent decodes the payload as an OpenLineage run event.
func (e LineageEvent) RunEvent() (openlineage.RunEvent, error) {
	return openlineage.Parse(e.Payload)
}

// PostedLineageEvent is the result of PostLineageEvent.
type PostedLineageEvent struct {
	Event  openlineage.RunEvent
	Output *datazone.PostLineageEventOutput
}

// PostLineageEvent submits a COMPLETE run event recording data flowing from
// sourceAssetID to targetAssetID, then hands it to the configured sinks.
func (s *Service) PostLineageEvent(ctx context.Context, sourceAssetID, targetAssetID string) (*PostedLineageEvent, error) {
	s.logger.Printf("INFO posting lineage event: %s -> %s", sourceAssetID, targetAssetID)

	event := openlineage.CompleteEvent(s.domainID, s.jobName, s.newID(), s.producer, s.now(), sourceAssetID, targetAssetID)
	payload, err := openlineage.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode lineage event: %w", err)
	}
	s.logger.Printf("INFO lineage run event: %s", payload)

	out, err := s.api.PostLineageEvent(ctx, &datazone.PostLineageEventInput{
		DomainIdentifier: aws.String(s.domainID),
		ClientToken:      aws.String(s.newID()),
		Event:            payload,
	})
	if err != nil {
		return nil, fmt.Errorf("post lineage event: %w", err)
	}
	s.logger.Printf("INFO PostLineageEvent response: %s", describe(out))

	// DataZone already holds the event; sink failures are reported, not returned.
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, event, payload); err != nil {
			s.logger.Printf("WARN deliver lineage event %s to %s: %v", event.Run.ID, sink.Name(), err)
		}
	}

	return &PostedLineageEvent{Event: event, Output: out}, nil
}

// GetLineageEvent fetches a lineage event and reads its payload.
func (s *Service) GetLineageEvent(ctx context.Context, eventID string) (*LineageEvent, error) {
	s.logger.Printf("INFO finding lineage event by id: %s", eventID)
	out, err := s.api.GetLineageEvent(ctx, &datazone.GetLineageEventInput{
		DomainIdentifier: aws.String(s.domainID),
		Identifier:       aws.String(eventID),
	})
	if err != nil {
		return nil, fmt.Errorf("get lineage event %s: %w", eventID, err)
	}

	payload := out.Event
	event := &LineageEvent{
		ID:               aws.ToString(out.Id),
		DomainID:         aws.ToString(out.DomainId),
		CreatedBy:        aws.ToString(out.CreatedBy),
		CreatedAt:        out.CreatedAt,
		EventTime:        out.EventTime,
		ProcessingStatus: string(out.ProcessingStatus),
		Payload:          payload,
	}
	s.logger.Printf("INFO GetLineageEvent response: %s event=%s", describe(event), payload)
	return event, nil
}
