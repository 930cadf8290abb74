package network

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jusunglee/metro-go/internal/models"
)

// businessObject is the station listing published by the metro operator
type businessObject struct {
	BusinessObject []struct {
		LineName string `json:"lineName"`
		Stations []struct {
			StationName string `json:"stationName"`
		} `json:"stations"`
	} `json:"businessObject"`
}

// ConvertBusinessObject turns an operator station listing into line
// descriptors. The listing carries no travel times, so every hop gets the
// same cost.
func ConvertBusinessObject(r io.Reader, hopCost float64) ([]models.LineDescriptor, error) {
	var listing businessObject
	if err := json.NewDecoder(r).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to parse station listing: %w", err)
	}

	lines := make([]models.LineDescriptor, 0, len(listing.BusinessObject))
	for _, obj := range listing.BusinessObject {
		data := make([]interface{}, 0, 2*len(obj.Stations))
		for i, station := range obj.Stations {
			if i > 0 {
				data = append(data, hopCost)
			}
			data = append(data, station.StationName)
		}

		line := models.LineDescriptor{Name: obj.LineName, Data: data}
		if err := Validate(line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
