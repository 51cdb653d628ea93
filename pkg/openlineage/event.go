// Package openlineage builds OpenLineage run events submitted to the DataZone lineage API.
package openlineage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaURL identifies the OpenLineage object model version the events conform to.
const SchemaURL = "https://openlineage.io/spec/2-0-2/OpenLineage.json#/definitions/RunEvent"

// EventType is an OpenLineage run state.
type EventType string

const (
	EventTypeStart    EventType = "START"
	EventTypeRunning  EventType = "RUNNING"
	EventTypeComplete EventType = "COMPLETE"
	EventTypeFail     EventType = "FAIL"
	EventTypeAbort    EventType = "ABORT"
	EventTypeOther    EventType = "OTHER"
)

// Facets are free-form metadata blocks attached to runs, jobs and datasets.
type Facets map[string]any

// RunEvent describes one execution of a job and the datasets it read and wrote.
type RunEvent struct {
	EventType EventType `json:"eventType"`
	EventTime Timestamp `json:"eventTime"`
	Run       Run       `json:"run"`
	Job       Job       `json:"job"`
	Inputs    []Dataset `json:"inputs,omitempty"`
	Outputs   []Dataset `json:"outputs,omitempty"`
	Producer  string    `json:"producer"`
	SchemaURL string    `json:"schemaURL"`
}

// Run identifies a single job execution.
type Run struct {
	ID     string `json:"runId"`
	Facets Facets `json:"facets,omitempty"`
}

// Job is the recurring process a run belongs to.
type Job struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Facets    Facets `json:"facets,omitempty"`
}

// Dataset is an input or output of a run.
type Dataset struct {
	Namespace    string `json:"namespace"`
	Name         string `json:"name"`
	Facets       Facets `json:"facets,omitempty"`
	InputFacets  Facets `json:"inputFacets,omitempty"`
	OutputFacets Facets `json:"outputFacets,omitempty"`
}

// Timestamp serializes as ISO-8601 with the zone offset preserved
// (2024-01-01T00:00:00Z, 2024-01-01T09:30:00.25+02:00), never as epoch numbers.
type Timestamp time.Time

// Time returns the underlying time value.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, errors.New("openlineage: eventTime is required")
	}
	return json.Marshal(tt.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("openlineage: eventTime must be a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("openlineage: parse eventTime %q: %w", raw, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// CompleteEvent returns a COMPLETE run event moving data from source to target.
// Both datasets, like the job, live in namespace.
func CompleteEvent(namespace, jobName, runID, producer string, at time.Time, source, target string) RunEvent {
	return RunEvent{
		EventType: EventTypeComplete,
		EventTime: Timestamp(at),
		Run:       Run{ID: runID},
		Job:       Job{Namespace: namespace, Name: jobName},
		Inputs:    []Dataset{{Namespace: namespace, Name: source}},
		Outputs:   []Dataset{{Namespace: namespace, Name: target}},
		Producer:  producer,
		SchemaURL: SchemaURL,
	}
}

// Validate checks the fields the lineage API rejects when absent.
func (e RunEvent) Validate() error {
	var missing []string
	if e.EventType == "" {
		missing = append(missing, "eventType")
	}
	if time.Time(e.EventTime).IsZero() {
		missing = append(missing, "eventTime")
	}
	if e.Run.ID == "" {
		missing = append(missing, "run.runId")
	}
	if e.Job.Namespace == "" {
		missing = append(missing, "job.namespace")
	}
	if e.Job.Name == "" {
		missing = append(missing, "job.name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("openlineage: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Marshal validates and encodes the event.
func Marshal(e RunEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// Parse decodes a run event payload such as the one returned by GetLineageEvent.
func Parse(data []byte) (RunEvent, error) {
	var e RunEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return RunEvent{}, fmt.Errorf("openlineage: decode run event: %w", err)
	}
	return e, nil
}
