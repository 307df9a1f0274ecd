package annocmp

import (
	"testing"
)

func TestNormalizeSegmentation(t *testing.T) {

	polys := [][]float64{
		// valid triangle
		{0, 0, 10, 0, 10, 10},
		// odd trailing coordinate gets dropped, still 3 points
		{0, 0, 20, 0, 20, 20, 99},
		// too few points after pairing, skipped
		{0, 0, 5, 5},
		// empty, skipped
		{},
	}

	got := NormalizeSegmentation(polys)

	if len(got) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(got))
	}

	if len(got[1]) != 6 {
		t.Errorf("expected trailing coordinate dropped, got length %d", len(got[1]))
	}
}

func TestNormalizeSegmentationEmpty(t *testing.T) {

	if got := NormalizeSegmentation(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}

	if got := NormalizeSegmentation([][]float64{{1, 2, 3, 4}}); got != nil {
		t.Errorf("expected nil for degenerate input, got %v", got)
	}
}

func TestByImage(t *testing.T) {

	anns := []*Annotation{
		{ID: 1, ImageID: 1},
		{ID: 2, ImageID: 2},
		{ID: 3, ImageID: 1},
	}

	groups := ByImage(anns)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if len(groups[1]) != 2 || groups[1][0].ID != 1 || groups[1][1].ID != 3 {
		t.Errorf("group for image 1 lost input order: %v", groups[1])
	}
}

func TestProvenanceString(t *testing.T) {

	if Machine.String() != "machine" || Human.String() != "human" {
		t.Errorf("unexpected provenance names %q %q", Machine, Human)
	}
}
