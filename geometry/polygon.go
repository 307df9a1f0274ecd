package geometry

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// clipperScale converts float pixel coordinates into the integer space the
// clipper library operates in.  The scale cancels out of the IoU ratio so
// it only bounds the rounding error, 1/256 of a pixel
const clipperScale = 256.0

// PolygonIoU calculates the Intersection over Union of two multi-polygon
// sets, the union of polygons on each side forms that side's region.  The
// result is orientation independent and degrades to 0 for degenerate or
// non-finite input
func PolygonIoU(polysA, polysB [][]float64) float64 {

	pathsA := toPaths(polysA)
	pathsB := toPaths(polysB)

	if len(pathsA) == 0 || len(pathsB) == 0 {
		return 0
	}

	inter := clipArea(pathsA, pathsB, clipper.CtIntersection)

	if inter <= 0 {
		return 0
	}

	union := clipArea(pathsA, pathsB, clipper.CtUnion)

	if union <= 0 {
		return 0
	}

	iou := inter / union

	// guard against rounding pushing the ratio past 1
	if iou > 1 {
		iou = 1
	}

	return iou
}

// clipArea runs the given boolean operation between the two path sets and
// returns the total enclosed area in scaled units
func clipArea(a, b clipper.Paths, op clipper.ClipType) float64 {

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(a, clipper.PtSubject, true)
	c.AddPaths(b, clipper.PtClip, true)

	solution, ok := c.Execute1(op, clipper.PftNonZero, clipper.PftNonZero)

	if !ok {
		return 0
	}

	area := 0.0

	for _, path := range solution {
		area += math.Abs(clipper.Area(path))
	}

	return area
}

// toPaths converts flat x,y coordinate sequences into clipper paths,
// skipping polygons with fewer than 3 points or non-finite coordinates
func toPaths(polys [][]float64) clipper.Paths {

	var paths clipper.Paths

	for _, poly := range polys {

		n := len(poly) / 2

		if n < 3 {
			continue
		}

		path := make(clipper.Path, 0, n)
		valid := true

		for i := 0; i < n; i++ {

			x, y := poly[i*2], poly[i*2+1]

			if !finite(x) || !finite(y) {
				valid = false
				break
			}

			path = append(path, &clipper.IntPoint{
				X: clipper.CInt(math.Round(x * clipperScale)),
				Y: clipper.CInt(math.Round(y * clipperScale)),
			})
		}

		if valid {
			paths = append(paths, path)
		}
	}

	return paths
}
