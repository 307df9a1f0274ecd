package viewport

import (
	"math"
	"testing"
)

func TestFitToView(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 1000, H: 500}, Size{W: 800, H: 630})

	// min(800/1000, 600/500) * 0.9
	want := 0.8 * 0.9

	if math.Abs(s.Scale-want) > 1e-9 {
		t.Errorf("expected scale %f, got %f", want, s.Scale)
	}

	if s.Pan.X != 0 || s.Pan.Y != s.InfoStripHeight/2 {
		t.Errorf("expected pan reset to (0, %f), got %+v",
			s.InfoStripHeight/2, s.Pan)
	}
}

func TestFitToViewZeroImage(t *testing.T) {

	s := NewState()
	s.Scale = 2.5
	s.FitToView(Size{W: 0, H: 100}, Size{W: 800, H: 600})

	if s.Scale != 2.5 {
		t.Errorf("fit with zero sized image must be a no-op, scale changed to %f",
			s.Scale)
	}
}

func TestZoomClamped(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 100, H: 100}, Size{W: 200, H: 200})

	for i := 0; i < 100; i++ {
		s.Zoom(1)
	}

	if s.Scale > MaxScale {
		t.Errorf("scale %f exceeded max %f", s.Scale, MaxScale)
	}

	for i := 0; i < 200; i++ {
		s.Zoom(-1)
	}

	if s.Scale < MinScale {
		t.Errorf("scale %f fell below min %f", s.Scale, MinScale)
	}

	before := s.Scale
	s.Zoom(0)

	if s.Scale != before {
		t.Errorf("zero delta must not change scale")
	}
}

func TestPanUnbounded(t *testing.T) {

	s := NewState()
	s.PanBy(Vec{X: 1e6, Y: -1e6})
	s.PanBy(Vec{X: 1, Y: 1})

	if s.Pan.X != 1e6+1 || s.Pan.Y != -1e6+1 {
		t.Errorf("pan must accumulate without clamping, got %+v", s.Pan)
	}
}

func TestTransformRoundTrip(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 1920, H: 1080}, Size{W: 800, H: 600})
	s.Zoom(1)
	s.PanBy(Vec{X: 33, Y: -47})

	points := []Vec{
		{X: 0, Y: 0},
		{X: 1920, Y: 1080},
		{X: 123.456, Y: 789.012},
		{X: -50, Y: 2000},
	}

	for _, p := range points {

		back := s.ToImage(s.ToViewport(p))

		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %+v drifted to %+v", p, back)
		}
	}
}

func TestIdentityFit(t *testing.T) {

	s := NewState()
	s.IdentityFit(Size{W: 640, H: 480})

	p := Vec{X: 123.5, Y: 45.25}

	if got := s.ToViewport(p); got != p {
		t.Errorf("identity fit should map points unchanged, got %+v", got)
	}
}

func TestHandleEventDragPan(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 100, H: 100}, Size{W: 400, H: 400})
	startPan := s.Pan

	// move without a press does nothing
	if s.HandleEvent(Event{Kind: PointerMove, Pos: Vec{X: 50, Y: 50}}) {
		t.Errorf("move without press must not change state")
	}

	s.HandleEvent(Event{Kind: PointerDown, Pos: Vec{X: 10, Y: 10}})

	if !s.HandleEvent(Event{Kind: PointerMove, Pos: Vec{X: 25, Y: 30}}) {
		t.Fatalf("drag move should report a state change")
	}

	if s.Pan.X != startPan.X+15 || s.Pan.Y != startPan.Y+20 {
		t.Errorf("expected pan delta (15,20), got %+v", s.Pan)
	}

	s.HandleEvent(Event{Kind: PointerUp, Pos: Vec{X: 25, Y: 30}})

	if s.HandleEvent(Event{Kind: PointerMove, Pos: Vec{X: 99, Y: 99}}) {
		t.Errorf("move after release must not pan")
	}
}

func TestHandleEventWheelAndResize(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 100, H: 100}, Size{W: 400, H: 430})
	before := s.Scale

	if !s.HandleEvent(Event{Kind: Wheel, Delta: Vec{Y: 120}}) {
		t.Fatalf("wheel should report a state change")
	}

	if math.Abs(s.Scale-before*1.1) > 1e-9 {
		t.Errorf("expected scale %f, got %f", before*1.1, s.Scale)
	}

	s.HandleEvent(Event{Kind: Resize, Pos: Vec{X: 800, Y: 830}})

	// resize refits: min(800/100, 800/100) * 0.9 clamped to max 7.2
	if math.Abs(s.Scale-7.2) > 1e-9 {
		t.Errorf("expected refit scale 7.2 after resize, got %f", s.Scale)
	}
}

func TestSetImageSizeKeepPan(t *testing.T) {

	s := NewState()
	s.FitToView(Size{W: 100, H: 100}, Size{W: 400, H: 400})
	s.PanBy(Vec{X: 40, Y: 40})
	pan := s.Pan

	s.SetImageSize(Size{W: 200, H: 200}, true)

	if s.Pan != pan {
		t.Errorf("keepPan should preserve the offset, got %+v", s.Pan)
	}

	s.SetImageSize(Size{W: 300, H: 300}, false)

	if s.Pan.X != 0 || s.Pan.Y != s.InfoStripHeight/2 {
		t.Errorf("expected pan reset on image switch, got %+v", s.Pan)
	}
}
