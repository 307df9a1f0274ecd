package compare

import (
	"sort"

	annocmp "github.com/annotools/go-annocmp"
)

// Run is the completed output of one whole-corpus comparison.  It is built
// fully before being handed to the caller so a stale run can be discarded
// without any partial state leaking
type Run struct {
	// Results maps image id to that image's classified results
	Results map[int][]Result
	// Metrics is the corpus level aggregate
	Metrics AggregateMetrics
	// Categories is the per category breakdown sorted by category id
	Categories []CategoryMetrics
}

// Compare matches the full machine set against the full human set and
// aggregates the corpus metrics.  Annotations are grouped per image and
// matched image by image in ascending image id order, images present in
// only one set still produce all-Missing or all-Extra results
func Compare(machine, human []*annocmp.Annotation, totalImages int,
	iouThreshold float64) *Run {

	machineByImage := annocmp.ByImage(machine)
	humanByImage := annocmp.ByImage(human)

	results := make(map[int][]Result)

	for _, imageID := range unionImageIDs(machineByImage, humanByImage) {
		results[imageID] = Match(machineByImage[imageID],
			humanByImage[imageID], iouThreshold)
	}

	return &Run{
		Results:    results,
		Metrics:    Aggregate(results, totalImages, len(machine), len(human)),
		Categories: AggregateByCategory(results),
	}
}

// unionImageIDs returns the sorted union of image ids present in either
// annotation set
func unionImageIDs(a, b map[int][]*annocmp.Annotation) []int {

	seen := make(map[int]bool)

	for id := range a {
		seen[id] = true
	}
	for id := range b {
		seen[id] = true
	}

	ids := make([]int, 0, len(seen))

	for id := range seen {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}
