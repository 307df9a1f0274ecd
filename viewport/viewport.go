// Package viewport maintains the pan/zoom state of an image view and the
// affine transform between image pixel space and viewport pixel space.
package viewport

import (
	"math"
)

const (
	// MinScale and MaxScale bound the zoom factor
	MinScale = 0.1
	MaxScale = 10.0

	// zoomInStep and zoomOutStep are the per wheel notch scale factors
	zoomInStep  = 1.1
	zoomOutStep = 0.9

	// fitMargin leaves a 10% border when fitting the image to the view
	fitMargin = 0.9

	// DefaultInfoStripHeight is the height in viewport pixels reserved
	// for the info strip above the image
	DefaultInfoStripHeight = 30.0
)

// Vec is a 2D vector in viewport or image pixels
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in pixels
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// State holds the mutable view parameters for one open image view.  One
// instance exists per view and is reset when a different image is loaded
type State struct {
	// Scale is the zoom factor, always within [MinScale, MaxScale]
	Scale float64
	// Pan is the accumulated pan offset in viewport pixels
	Pan Vec
	// InfoStripHeight is the reserved strip above the image
	InfoStripHeight float64

	image     Size
	container Size

	dragging  bool
	dragStart Vec
}

// NewState returns a viewport state at scale 1 with no pan offset
func NewState() *State {
	return &State{
		Scale:           1.0,
		InfoStripHeight: DefaultInfoStripHeight,
	}
}

// SetImageSize records the pixel dimensions of the displayed image and
// refits it to the current container.  keepPan preserves the pan offset
// across the image switch, otherwise fitting resets it
func (s *State) SetImageSize(image Size, keepPan bool) {

	pan := s.Pan
	s.image = image
	s.FitToView(image, s.container)

	if keepPan {
		s.Pan = pan
	}
}

// FitToView scales the image to fit the container with a 10% margin and
// resets the pan offset to vertically center the image below the info
// strip.  A zero sized image leaves the state untouched
func (s *State) FitToView(image, container Size) {

	if image.W <= 0 || image.H <= 0 {
		return
	}

	s.image = image
	s.container = container

	scaleX := container.W / image.W
	scaleY := (container.H - s.InfoStripHeight) / image.H

	s.Scale = clampScale(math.Min(scaleX, scaleY) * fitMargin)
	s.Pan = Vec{X: 0, Y: s.InfoStripHeight / 2}
}

// IdentityFit sets a 1:1 transform so viewport coordinates equal image
// pixel coordinates, used when rendering directly onto the image itself
func (s *State) IdentityFit(image Size) {
	s.image = image
	s.container = image
	s.Scale = 1.0
	s.Pan = Vec{}
}

// Zoom multiplies the scale by one zoom step, in for positive delta and
// out for negative, clamped to [MinScale, MaxScale].  Zooming is about the
// viewport center
func (s *State) Zoom(delta float64) {

	if delta == 0 {
		return
	}

	step := zoomOutStep

	if delta > 0 {
		step = zoomInStep
	}

	s.Scale = clampScale(s.Scale * step)
}

// PanBy accumulates the given delta into the pan offset.  Panning is
// unbounded, the image may move arbitrarily far off view
func (s *State) PanBy(delta Vec) {
	s.Pan.X += delta.X
	s.Pan.Y += delta.Y
}

// origin is the viewport position of the image's top-left corner, derived
// from the container center, image size, scale and pan offset
func (s *State) origin() Vec {
	return Vec{
		X: s.container.W/2 - s.image.W*s.Scale/2 + s.Pan.X,
		Y: s.container.H/2 - s.image.H*s.Scale/2 + s.Pan.Y,
	}
}

// ToViewport transforms an image space point into viewport space
func (s *State) ToViewport(p Vec) Vec {

	o := s.origin()

	return Vec{
		X: p.X*s.Scale + o.X,
		Y: p.Y*s.Scale + o.Y,
	}
}

// ToImage transforms a viewport space point back into image space.  It is
// the exact inverse of ToViewport up to floating point rounding
func (s *State) ToImage(p Vec) Vec {

	o := s.origin()

	return Vec{
		X: (p.X - o.X) / s.Scale,
		Y: (p.Y - o.Y) / s.Scale,
	}
}

// ImageRect returns the viewport space position and size of the full image
func (s *State) ImageRect() (Vec, Size) {
	return s.origin(), Size{W: s.image.W * s.Scale, H: s.image.H * s.Scale}
}

// ContainerSize returns the current container dimensions
func (s *State) ContainerSize() Size {
	return s.container
}

func clampScale(scale float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, scale))
}
