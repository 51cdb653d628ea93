package openlineage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMarshalEventTimeISO8601(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "utc",
			at:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want: `"eventTime":"2024-01-01T00:00:00Z"`,
		},
		{
			name: "offset preserved",
			at:   time.Date(2024, 1, 1, 9, 30, 0, 250_000_000, time.FixedZone("", 2*60*60)),
			want: `"eventTime":"2024-01-01T09:30:00.25+02:00"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := CompleteEvent("dzd_123", "job", "run-1", "", tt.at, "src", "dst")
			data, err := Marshal(event)
			if err != nil {
				t.Fatalf("Marshal() err=%v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Fatalf("Marshal() = %s, want substring %s", data, tt.want)
			}
		})
	}
}

func TestCompleteEventShape(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data, err := Marshal(CompleteEvent("dzd_123", "DatazoneLineageJob", "run-1", "", at, "src", "dst"))
	if err != nil {
		t.Fatalf("Marshal() err=%v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["eventType"] != "COMPLETE" {
		t.Fatalf("eventType = %v", doc["eventType"])
	}
	if _, ok := doc["eventTime"].(string); !ok {
		t.Fatalf("eventTime must be a string, got %T", doc["eventTime"])
	}
	run := doc["run"].(map[string]any)
	if run["runId"] != "run-1" {
		t.Fatalf("runId = %v", run["runId"])
	}
	job := doc["job"].(map[string]any)
	if job["namespace"] != "dzd_123" || job["name"] != "DatazoneLineageJob" {
		t.Fatalf("job = %v", job)
	}
	inputs := doc["inputs"].([]any)
	outputs := doc["outputs"].([]any)
	if len(inputs) != 1 || len(outputs) != 1 {
		t.Fatalf("inputs=%d outputs=%d, want 1 each", len(inputs), len(outputs))
	}
	if in := inputs[0].(map[string]any); in["name"] != "src" || in["namespace"] != "dzd_123" {
		t.Fatalf("input = %v", in)
	}
	if out := outputs[0].(map[string]any); out["name"] != "dst" {
		t.Fatalf("output = %v", out)
	}
	if doc["schemaURL"] != SchemaURL {
		t.Fatalf("schemaURL = %v", doc["schemaURL"])
	}
}

func TestMarshalRejectsIncompleteEvent(t *testing.T) {
	_, err := Marshal(RunEvent{EventType: EventTypeComplete})
	if err == nil {
		t.Fatalf("Marshal() expected error")
	}
	for _, field := range []string{"eventTime", "run.runId", "job.namespace", "job.name"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error %q does not mention %s", err, field)
		}
	}
}

func TestParseRoundTripsEventTime(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	data, err := Marshal(CompleteEvent("ns", "job", "run-1", "", at, "a", "b"))
	if err != nil {
		t.Fatalf("Marshal() err=%v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}
	if !got.EventTime.Time().Equal(at) {
		t.Fatalf("eventTime = %v, want %v", got.EventTime.Time(), at)
	}
	if got.Run.ID != "run-1" || got.Inputs[0].Name != "a" {
		t.Fatalf("Parse() = %+v", got)
	}
}

func TestParseRejectsEpochEventTime(t *testing.T) {
	if _, err := Parse([]byte(`{"eventTime":1704067200000}`)); err == nil {
		t.Fatalf("Parse() expected error for numeric eventTime")
	}
}
