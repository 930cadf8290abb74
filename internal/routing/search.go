// Package routing finds the cheapest route between two stations and groups
// its links into per-line segments.
package routing

import (
	"container/heap"

	"github.com/jusunglee/metro-go/internal/models"
)

// Graph is the read side of the station store used by the search
type Graph interface {
	Links(station string) ([]models.Link, bool)
}

// record is the tentative state of a discovered station
type record struct {
	cost  float64
	prev  string
	link  models.Link
	final bool
}

// FindPathRaw returns the links of the cheapest route from start to dest,
// in travel order. ok is false when either station is unknown or no route
// connects them. A query from a station to itself yields no links.
//
// On equal cost the route discovered first is kept.
func FindPathRaw(g Graph, start, dest string) ([]models.Link, bool) {
	startLinks, ok := g.Links(start)
	if !ok {
		return nil, false
	}
	if _, ok := g.Links(dest); !ok {
		return nil, false
	}
	if start == dest {
		return []models.Link{}, true
	}

	records := make(map[string]*record)
	pq := &priorityQueue{}

	relax := func(from string, base float64, links []models.Link) {
		for _, link := range links {
			cost := base + link.Cost
			if rec, ok := records[link.To]; ok && (rec.final || cost >= rec.cost) {
				continue
			}
			records[link.To] = &record{cost: cost, prev: from, link: link}
			heap.Push(pq, &pqItem{station: link.To, cost: cost})
		}
	}

	relax(start, 0, startLinks)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		rec := records[item.station]
		if rec.final {
			continue
		}
		rec.final = true

		if item.station == dest {
			return reconstruct(records, start, dest), true
		}

		links, _ := g.Links(item.station)
		relax(item.station, rec.cost, links)
	}

	return nil, false
}

// reconstruct walks predecessors back from dest to start
func reconstruct(records map[string]*record, start, dest string) []models.Link {
	var links []models.Link
	rec := records[dest]
	for {
		links = append(links, rec.link)
		if rec.prev == start {
			break
		}
		rec = records[rec.prev]
	}

	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links
}

type pqItem struct {
	station string
	cost    float64
}

// priorityQueue is a min-heap on cost. Stale entries for an already
// finalized station are skipped by the caller.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].cost < pq[j].cost }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
