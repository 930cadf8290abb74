package routing

import (
	"github.com/jusunglee/metro-go/internal/models"
)

// BuildSegments groups links into runs on the same line. Each segment's
// station list opens with the station the previous segment ended on, or
// start for the first one.
func BuildSegments(start string, links []models.Link) []models.Segment {
	segments := []models.Segment{}
	if len(links) == 0 {
		return segments
	}

	current := models.Segment{
		Line:      links[0].Line,
		Direction: links[0].Direction,
		Stations:  []string{start},
	}
	for i, link := range links {
		if i > 0 && link.Line != links[i-1].Line {
			last := current.Stations[len(current.Stations)-1]
			segments = append(segments, current)
			current = models.Segment{
				Line:      link.Line,
				Direction: link.Direction,
				Stations:  []string{last},
			}
		}
		current.Stations = append(current.Stations, link.To)
		current.Len += link.Cost
	}
	return append(segments, current)
}

// FindPath runs the search and assembles the segmented route
func FindPath(g Graph, start, dest string) (*models.Path, bool) {
	links, ok := FindPathRaw(g, start, dest)
	if !ok {
		return nil, false
	}

	path := &models.Path{Segments: BuildSegments(start, links)}
	for _, seg := range path.Segments {
		path.Len += seg.Len
	}
	return path, true
}
