package models

// Link is a directed, costed edge to a neighbouring station
type Link struct {
	To        string  `json:"to"`
	Cost      float64 `json:"cost"`
	Line      string  `json:"line"`
	Direction string  `json:"direction"` // terminus reached by staying on Line
}

// Segment is a run of consecutive links on one line
type Segment struct {
	Line      string   `json:"line"`
	Direction string   `json:"direction"`
	Stations  []string `json:"stations"`
	Len       float64  `json:"len"`
}

// Path is a found route, owned by the caller
type Path struct {
	Segments []Segment `json:"segments"`
	Len      float64   `json:"len"`
}

// Stations returns every station visited in order. Transfer stations,
// which close one segment and open the next, appear once.
func (p *Path) Stations() []string {
	var stations []string
	for i, seg := range p.Segments {
		if i == 0 {
			stations = append(stations, seg.Stations...)
			continue
		}
		if len(seg.Stations) > 0 {
			stations = append(stations, seg.Stations[1:]...)
		}
	}
	return stations
}

// Transfers returns the number of line changes on the path
func (p *Path) Transfers() int {
	if len(p.Segments) == 0 {
		return 0
	}
	return len(p.Segments) - 1
}

// LineDescriptor is one ingested line: alternating station names and hop
// costs, starting and ending with a station name.
type LineDescriptor struct {
	Name string        `json:"name"`
	Data []interface{} `json:"data"`
}

// RouteRequest is the body of a route query
type RouteRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}
