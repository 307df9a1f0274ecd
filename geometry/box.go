// Package geometry provides the geometric primitives shared by the
// annotation matcher and the overlay renderer, box and polygon
// intersection-over-union in image pixel space.
package geometry

import (
	"math"

	annocmp "github.com/annotools/go-annocmp"
)

// BoxIoU calculates the Intersection over Union of two axis-aligned
// bounding boxes.  Degenerate boxes (non-positive width or height) and
// non-finite coordinates yield 0 rather than an error so a single bad
// annotation never aborts a comparison run
func BoxIoU(a, b annocmp.Box) float64 {

	if !finiteBox(a) || !finiteBox(b) {
		return 0
	}

	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return 0
	}

	iw := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)

	if iw <= 0 {
		return 0
	}

	ih := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)

	if ih <= 0 {
		return 0
	}

	inter := iw * ih
	union := a.W*a.H + b.W*b.H - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// EffectiveIoU is the cost function used by the matching engine.  When both
// annotations carry segmentation the polygon IoU is used, otherwise it
// falls back to the bounding box IoU
func EffectiveIoU(a, b *annocmp.Annotation) float64 {

	if a.HasSegmentation() && b.HasSegmentation() {
		return PolygonIoU(a.Polygons, b.Polygons)
	}

	return BoxIoU(a.Box, b.Box)
}

// finiteBox reports whether all box fields are finite numbers
func finiteBox(b annocmp.Box) bool {
	return finite(b.X) && finite(b.Y) && finite(b.W) && finite(b.H)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
