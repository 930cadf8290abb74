package network

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/internal/store"
)

const sampleNetwork = `[
  {"name": "1", "data": ["A", 1, "B", 2, "C"]},
  {"name": "2", "data": ["C", 3, "D"]}
]`

func TestBuild(t *testing.T) {
	lines, err := Decode([]byte(sampleNetwork), FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	s := store.NewStore()
	if err := Build(lines, s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	links, ok := s.Links("B")
	if !ok {
		t.Fatal("Expected station B")
	}
	expected := []models.Link{
		{To: "A", Cost: 1, Line: "1", Direction: "A"},
		{To: "C", Cost: 2, Line: "1", Direction: "C"},
	}
	if len(links) != len(expected) {
		t.Fatalf("Expected %d links from B, got %d", len(expected), len(links))
	}
	for i := range expected {
		if links[i] != expected[i] {
			t.Errorf("Link %d: expected %+v, got %+v", i, expected[i], links[i])
		}
	}

	// The forward link is labelled with the far terminus, not the next stop
	links, _ = s.Links("A")
	if links[0].Direction != "C" {
		t.Errorf("Expected direction C from A, got %s", links[0].Direction)
	}

	stations := s.LineStations()["1"]
	if strings.Join(stations, ",") != "A,B,C" {
		t.Errorf("Expected line 1 stations A,B,C, got %v", stations)
	}
	if s.StationCount() != 4 || s.LinkCount() != 6 {
		t.Errorf("Expected 4 stations and 6 links, got %d and %d", s.StationCount(), s.LinkCount())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"not json", `{`, ErrNotList},
		{"object", `{"1": ["A", 1, "B"]}`, ErrNotList},
		{"line not object", `["A"]`, ErrBadLine},
		{"missing name", `[{"data": ["A", 1, "B"]}]`, ErrBadLine},
		{"missing data", `[{"name": "1"}]`, ErrBadLine},
		{"data not list", `[{"name": "1", "data": "A"}]`, ErrBadLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), FormatJSON)
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}

	if _, err := Decode(nil, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		line models.LineDescriptor
		err  error
	}{
		{"valid", models.LineDescriptor{Name: "1", Data: []interface{}{"A", 1.0, "B"}}, nil},
		{"zero cost", models.LineDescriptor{Name: "1", Data: []interface{}{"A", 0.0, "B"}}, nil},
		{"empty name", models.LineDescriptor{Data: []interface{}{"A", 1.0, "B"}}, ErrEmptyName},
		{"even length", models.LineDescriptor{Name: "1", Data: []interface{}{"A", 1.0, "B", 2.0}}, ErrEvenLength},
		{"empty data", models.LineDescriptor{Name: "1"}, ErrEvenLength},
		{"single station", models.LineDescriptor{Name: "1", Data: []interface{}{"A"}}, ErrTooShort},
		{"numeric station", models.LineDescriptor{Name: "1", Data: []interface{}{"A", 1.0, 2.0}}, ErrBadStation},
		{"empty station", models.LineDescriptor{Name: "1", Data: []interface{}{"", 1.0, "B"}}, ErrBadStation},
		{"string cost", models.LineDescriptor{Name: "1", Data: []interface{}{"A", "1", "B"}}, ErrBadCost},
		{"negative cost", models.LineDescriptor{Name: "1", Data: []interface{}{"A", -1.0, "B"}}, ErrBadCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.line)
			if tt.err == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestBuildRejectsWholeNetwork(t *testing.T) {
	lines := []models.LineDescriptor{
		{Name: "1", Data: []interface{}{"A", 1.0, "B"}},
		{Name: "2", Data: []interface{}{"B", 1.0}},
	}

	s := store.NewStore()
	if err := Build(lines, s); !errors.Is(err, ErrEvenLength) {
		t.Fatalf("Expected ErrEvenLength, got %v", err)
	}
	if s.StationCount() != 0 {
		t.Errorf("Expected nothing to be built, got %d stations", s.StationCount())
	}
}

func TestEncodeProtoMatchesJSON(t *testing.T) {
	lines, err := Decode([]byte(sampleNetwork), FormatJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, lines, FormatProto); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	fromProto, err := Decode(buf.Bytes(), FormatProto)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	a, b := store.NewStore(), store.NewStore()
	if err := Build(lines, a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := Build(fromProto, b); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, station := range []string{"A", "B", "C", "D"} {
		la, _ := a.Links(station)
		lb, _ := b.Links(station)
		if len(la) != len(lb) {
			t.Fatalf("Station %s: %d links from JSON, %d from protobuf", station, len(la), len(lb))
		}
		for i := range la {
			if la[i] != lb[i] {
				t.Errorf("Station %s link %d: %+v != %+v", station, i, la[i], lb[i])
			}
		}
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"data/map.json", FormatJSON},
		{"data/map.pb", FormatProto},
		{"https://example.com/map.pb?v=2", FormatProto},
		{"map", FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.name); got != tt.format {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.name, got, tt.format)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	if err := os.WriteFile(first, []byte(`[{"name": "1", "data": ["A", 1, "B"]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/second.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"name": "2", "data": ["B", 2, "C"]}]`))
	}))
	defer srv.Close()

	loader := NewLoader(5*time.Second, nil)

	t.Run("file and url", func(t *testing.T) {
		s, err := loader.Load(context.Background(), []string{first, srv.URL + "/second.json"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if s.StationCount() != 3 {
			t.Errorf("Expected 3 stations, got %d", s.StationCount())
		}
		lines := s.Lines()
		if len(lines) != 2 {
			t.Errorf("Expected 2 lines, got %v", lines)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(context.Background(), []string{filepath.Join(dir, "missing.json")})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected not-exist error, got %v", err)
		}
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := loader.Load(context.Background(), []string{srv.URL + "/missing.json"})
		if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
			t.Errorf("Expected HTTP 404 error, got %v", err)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		if _, err := loader.Load(context.Background(), nil); !errors.Is(err, ErrNoSources) {
			t.Errorf("Expected ErrNoSources, got %v", err)
		}
	})
}

func TestConvertBusinessObject(t *testing.T) {
	input := `{"businessObject": [
		{"lineName": "Line 1", "stations": [{"stationName": "X"}, {"stationName": "Y"}, {"stationName": "Z"}]},
		{"lineName": "Line 2", "stations": [{"stationName": "Z"}, {"stationName": "W"}]}
	]}`

	lines, err := ConvertBusinessObject(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	want := []interface{}{"X", 1.0, "Y", 1.0, "Z"}
	if len(lines[0].Data) != len(want) {
		t.Fatalf("Expected %v, got %v", want, lines[0].Data)
	}
	for i := range want {
		if lines[0].Data[i] != want[i] {
			t.Errorf("Data %d: expected %v, got %v", i, want[i], lines[0].Data[i])
		}
	}

	_, err = ConvertBusinessObject(strings.NewReader(`{"businessObject": [{"lineName": "L", "stations": []}]}`), 1)
	if !errors.Is(err, ErrEvenLength) {
		t.Errorf("Expected ErrEvenLength for a line without stations, got %v", err)
	}
}
