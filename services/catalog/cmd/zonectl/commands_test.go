package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"zonedemo/services/catalog"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	paths := [][]string{
		{"demo"},
		{"projects", "list"},
		{"projects", "id"},
		{"assets", "get"},
		{"assets", "create"},
		{"assets", "update"},
		{"asset-types", "exists"},
		{"asset-types", "id"},
		{"lineage", "post"},
		{"lineage", "get"},
	}
	for _, path := range paths {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("Find(%v) err=%v", path, err)
		}
		if cmd.Name() != path[len(path)-1] {
			t.Fatalf("Find(%v) = %s", path, cmd.Name())
		}
	}
}

func TestRequiredFlags(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"lineage", "post", "--source", "a"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "target") {
		t.Fatalf("Execute() err=%v, want missing --target", err)
	}
}

func TestNewLineageView(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    string
	}{
		{name: "json payload", payload: []byte(`{"eventType":"COMPLETE"}`), want: `"event": {`},
		{name: "text payload", payload: []byte("not json"), want: `"event": "not json"`},
		{name: "no payload", payload: nil, want: `"id": "e1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			view := newLineageView(&catalog.LineageEvent{ID: "e1", Payload: tt.payload})
			if err := printJSON(&buf, view); err != nil {
				t.Fatalf("printJSON() err=%v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Fatalf("output = %s, want substring %s", buf.String(), tt.want)
			}
			if !json.Valid(buf.Bytes()) {
				t.Fatalf("output is not valid JSON: %s", buf.String())
			}
		})
	}
}

func TestAssetsUpdateDescriptionFlag(t *testing.T) {
	cmd, _, err := newRootCommand().Find([]string{"assets", "update"})
	if err != nil {
		t.Fatalf("Find() err=%v", err)
	}
	flag := cmd.Flags().Lookup("description")
	if flag == nil {
		t.Fatalf("assets update has no --description flag")
	}
	if flag.DefValue != "" {
		t.Fatalf("--description default = %q, want empty", flag.DefValue)
	}
}
