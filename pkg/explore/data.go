// Package explore provides an interactive TUI for browsing detection results
// from a scan database.
package explore

import (
	"fmt"
	"os"
	"sort"

	"github.com/bytesleuth/sleuth/pkg/store"
	"github.com/bytesleuth/sleuth/pkg/types"
)

// exploreData holds all loaded data for the TUI.
type exploreData struct {
	store      store.Store
	detections []*types.Detection
}

// loadData opens a scan database and loads all detections.
func loadData(dbPath string) (*exploreData, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database not found: %s", dbPath)
	}

	s, err := store.New(store.Config{Path: dbPath})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	detections, err := s.GetAllDetections()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("retrieving detections: %w", err)
	}

	return &exploreData{
		store:      s,
		detections: detections,
	}, nil
}

func (d *exploreData) Close() {
	if d.store != nil {
		d.store.Close()
	}
}

// facet is one type bucket in the filter pane.
type facet struct {
	MIME  string
	Count int
}

// specialFacet values select detections by match state instead of type.
const (
	facetAll      = "(all)"
	facetFallback = "(fallback)"
)

// buildFacets counts detections per reported type, most common first.
// Two synthetic buckets lead the list: everything, and fallback-only.
func buildFacets(detections []*types.Detection) []facet {
	counts := make(map[string]int)
	fallbacks := 0
	for _, d := range detections {
		counts[d.Result.MIME]++
		if !d.Result.Matched {
			fallbacks++
		}
	}

	facets := make([]facet, 0, len(counts)+2)
	facets = append(facets, facet{MIME: facetAll, Count: len(detections)})
	facets = append(facets, facet{MIME: facetFallback, Count: fallbacks})

	mimes := make([]string, 0, len(counts))
	for mime := range counts {
		mimes = append(mimes, mime)
	}
	sort.Slice(mimes, func(i, j int) bool {
		if counts[mimes[i]] != counts[mimes[j]] {
			return counts[mimes[i]] > counts[mimes[j]]
		}
		return mimes[i] < mimes[j]
	})
	for _, mime := range mimes {
		facets = append(facets, facet{MIME: mime, Count: counts[mime]})
	}

	return facets
}

// filterDetections returns the detections selected by a facet.
// Scan order is preserved.
func filterDetections(detections []*types.Detection, selected string) []*types.Detection {
	switch selected {
	case facetAll, "":
		return detections
	case facetFallback:
		var out []*types.Detection
		for _, d := range detections {
			if !d.Result.Matched {
				out = append(out, d)
			}
		}
		return out
	default:
		var out []*types.Detection
		for _, d := range detections {
			if d.Result.MIME == selected {
				out = append(out, d)
			}
		}
		return out
	}
}
