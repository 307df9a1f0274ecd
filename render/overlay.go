// Package render converts annotations into viewport-space draw primitives
// and rasterizes primitive lists onto an image.  The overlay step performs
// no pixel drawing itself so the primitive list can be handed to any
// drawing surface.
package render

import (
	"fmt"
	"image/color"

	annocmp "github.com/annotools/go-annocmp"
	"github.com/annotools/go-annocmp/viewport"
)

// PrimitiveKind identifies the shape of a draw primitive
type PrimitiveKind int

const (
	// KindBox is a stroked rectangle
	KindBox PrimitiveKind = iota
	// KindLabelChip is a filled rectangle with centered text
	KindLabelChip
	// KindPolygon is a closed polygon, stroked and translucently filled
	KindPolygon
)

// String returns the name of the primitive kind
func (k PrimitiveKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindLabelChip:
		return "label"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// Rect is an axis-aligned rectangle in viewport pixels
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Primitive is one ordered draw instruction in viewport coordinates
type Primitive struct {
	Kind PrimitiveKind `json:"kind"`
	// Rect is the geometry for boxes and label chips
	Rect Rect `json:"rect,omitempty"`
	// Points are the polygon vertices
	Points []viewport.Vec `json:"points,omitempty"`
	// Text is the chip label
	Text string `json:"text,omitempty"`
	// Stroke is the outline color, by provenance
	Stroke color.RGBA `json:"stroke"`
	// Fill is the chip background or translucent polygon fill
	Fill color.RGBA `json:"fill,omitempty"`
}

// Options controls which annotation elements are emitted
type Options struct {
	ShowMachine  bool `json:"show_machine"`
	ShowHuman    bool `json:"show_human"`
	ShowLabels   bool `json:"show_labels"`
	ShowPolygons bool `json:"show_polygons"`
}

// DefaultOptions enables everything
func DefaultOptions() Options {
	return Options{
		ShowMachine:  true,
		ShowHuman:    true,
		ShowLabels:   true,
		ShowPolygons: true,
	}
}

// Overlay produces the ordered draw primitive list for the visible
// annotation sets under the current viewport transform.  Machine
// annotations are emitted first with the "M" prefix, then human with "H",
// each set in its original list order
func Overlay(machine, human []*annocmp.Annotation, state *viewport.State,
	opts Options) []Primitive {

	var prims []Primitive

	if opts.ShowMachine {
		prims = appendAnnotations(prims, machine, state, opts, MachineColor, "M")
	}

	if opts.ShowHuman {
		prims = appendAnnotations(prims, human, state, opts, HumanColor, "H")
	}

	return prims
}

// appendAnnotations emits the primitives for one annotation set
func appendAnnotations(prims []Primitive, anns []*annocmp.Annotation,
	state *viewport.State, opts Options, clr color.RGBA,
	prefix string) []Primitive {

	for i, ann := range anns {

		topLeft := state.ToViewport(viewport.Vec{X: ann.Box.X, Y: ann.Box.Y})

		box := Rect{
			X: topLeft.X,
			Y: topLeft.Y,
			W: ann.Box.W * state.Scale,
			H: ann.Box.H * state.Scale,
		}

		prims = append(prims, Primitive{
			Kind:   KindBox,
			Rect:   box,
			Stroke: clr,
		})

		if opts.ShowLabels {
			prims = append(prims, labelChip(ann, i, box, clr, prefix))
		}

		if opts.ShowPolygons && ann.HasSegmentation() {
			prims = appendPolygons(prims, ann.Polygons, state, clr)
		}
	}

	return prims
}

// labelChip builds the label background chip positioned above the box's
// top-left corner, sized to fit the label text
func labelChip(ann *annocmp.Annotation, index int, box Rect,
	clr color.RGBA, prefix string) Primitive {

	text := fmt.Sprintf("%s%d:%d", prefix, index+1, ann.CategoryID)

	if ann.Confidence < 1.0 {
		text += fmt.Sprintf("(%.2f)", ann.Confidence)
	}

	return Primitive{
		Kind: KindLabelChip,
		Rect: Rect{
			X: box.X,
			Y: box.Y - LabelChipHeight,
			W: TextWidth(text) + labelPad,
			H: LabelChipHeight,
		},
		Text:   text,
		Stroke: White,
		Fill:   clr,
	}
}

// appendPolygons emits one polygon primitive per sub-polygon with at least
// 3 points, vertices transformed into viewport space.  Degenerate
// sub-polygons are skipped silently
func appendPolygons(prims []Primitive, polys [][]float64,
	state *viewport.State, clr color.RGBA) []Primitive {

	for _, poly := range polys {

		n := len(poly) / 2

		if n < 3 {
			continue
		}

		points := make([]viewport.Vec, 0, n)

		for i := 0; i < n; i++ {
			points = append(points, state.ToViewport(viewport.Vec{
				X: poly[i*2],
				Y: poly[i*2+1],
			}))
		}

		prims = append(prims, Primitive{
			Kind:   KindPolygon,
			Points: points,
			Stroke: clr,
			Fill:   fillColor(clr),
		})
	}

	return prims
}
