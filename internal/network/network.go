// Package network reads transit network descriptions and builds the
// station store from them.
//
// A network is a list of lines. Each line has a name and a data array that
// alternates station names and hop costs, starting and ending with a
// station:
//
//	[{"name": "1", "data": ["A", 2, "B", 3, "C"]}]
//
// The first and last stations double as the line's terminus labels. Every
// hop is stored in both directions, each labelled with the terminus it
// travels towards.
package network

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/internal/store"
)

var (
	ErrNotList       = errors.New("network is not a list of lines")
	ErrBadLine       = errors.New("line is not an object with name and data")
	ErrEmptyName     = errors.New("line name is empty")
	ErrEvenLength    = errors.New("line data has even length")
	ErrTooShort      = errors.New("line data needs at least two stations")
	ErrBadStation    = errors.New("station name is not a non-empty string")
	ErrBadCost       = errors.New("cost is not a non-negative number")
	ErrUnknownFormat = errors.New("unknown network format")
)

// Format is the encoding of a network file
type Format string

const (
	FormatJSON  Format = "json"
	FormatProto Format = "pb"
)

// FormatOf picks the format from a file name or URL path. Anything not
// ending in .pb is treated as JSON.
func FormatOf(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if path.Ext(name) == ".pb" {
		return FormatProto
	}
	return FormatJSON
}

// Decode reads a network in the given format
func Decode(data []byte, format Format) ([]models.LineDescriptor, error) {
	list := &structpb.ListValue{}
	switch format {
	case FormatJSON:
		if err := protojson.Unmarshal(data, list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotList, err)
		}
	case FormatProto:
		if err := proto.Unmarshal(data, list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotList, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return linesFromList(list)
}

func linesFromList(list *structpb.ListValue) ([]models.LineDescriptor, error) {
	lines := make([]models.LineDescriptor, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		obj := v.GetStructValue()
		if obj == nil {
			return nil, fmt.Errorf("line %d: %w", i, ErrBadLine)
		}
		name, ok := obj.GetFields()["name"].GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("line %d: %w", i, ErrBadLine)
		}
		data := obj.GetFields()["data"].GetListValue()
		if data == nil {
			return nil, fmt.Errorf("line %q: %w", name.StringValue, ErrBadLine)
		}
		lines = append(lines, models.LineDescriptor{
			Name: name.StringValue,
			Data: data.AsSlice(),
		})
	}
	return lines, nil
}

// Validate checks one line descriptor without touching a store
func Validate(line models.LineDescriptor) error {
	if line.Name == "" {
		return ErrEmptyName
	}
	if len(line.Data)%2 != 1 {
		return fmt.Errorf("line %q: %w", line.Name, ErrEvenLength)
	}
	if len(line.Data) < 3 {
		return fmt.Errorf("line %q: %w", line.Name, ErrTooShort)
	}
	for i, v := range line.Data {
		if i%2 == 0 {
			if s, ok := v.(string); !ok || s == "" {
				return fmt.Errorf("line %q index %d: %w", line.Name, i, ErrBadStation)
			}
			continue
		}
		if c, ok := toCost(v); !ok || c < 0 {
			return fmt.Errorf("line %q index %d: %w", line.Name, i, ErrBadCost)
		}
	}
	return nil
}

// Build adds every line to the store. Each hop becomes a pair of links:
// forward towards the last station and backward towards the first.
func Build(lines []models.LineDescriptor, s *store.Store) error {
	for _, line := range lines {
		if err := Validate(line); err != nil {
			return err
		}
	}

	for _, line := range lines {
		first := line.Data[0].(string)
		last := line.Data[len(line.Data)-1].(string)

		for i := 0; i+2 < len(line.Data); i += 2 {
			fst := line.Data[i].(string)
			cost, _ := toCost(line.Data[i+1])
			snd := line.Data[i+2].(string)

			s.AddStationToLine(fst, line.Name)
			s.AddStationToLine(snd, line.Name)
			s.AddLink(fst, models.Link{To: snd, Cost: cost, Line: line.Name, Direction: last})
			s.AddLink(snd, models.Link{To: fst, Cost: cost, Line: line.Name, Direction: first})
		}
	}
	return nil
}

func toCost(v interface{}) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case float32:
		return float64(c), true
	case int:
		return float64(c), true
	case int64:
		return float64(c), true
	default:
		return 0, false
	}
}

// Encode writes lines in the given format
func Encode(w io.Writer, lines []models.LineDescriptor, format Format) error {
	values := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		values = append(values, map[string]interface{}{
			"name": line.Name,
			"data": line.Data,
		})
	}
	list, err := structpb.NewList(values)
	if err != nil {
		return fmt.Errorf("failed to build network list: %w", err)
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(list)
	case FormatProto:
		data, err = proto.MarshalOptions{Deterministic: true}.Marshal(list)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}

	_, err = w.Write(data)
	return err
}
