package viewport

// EventKind identifies a raw input event delivered by the windowing host
type EventKind int

const (
	// PointerDown starts a drag pan
	PointerDown EventKind = iota
	// PointerMove pans while a drag is active
	PointerMove
	// PointerUp ends a drag pan
	PointerUp
	// Wheel zooms by the vertical scroll delta
	Wheel
	// Resize updates the container size and refits the image
	Resize
)

// Event is a raw pointer/scroll/resize record.  Pos carries the pointer
// position, or the new container size for Resize.  Delta carries the
// scroll amount for Wheel
type Event struct {
	Kind  EventKind `json:"kind"`
	Pos   Vec       `json:"pos"`
	Delta Vec       `json:"delta"`
}

// HandleEvent applies a raw input event to the viewport state and reports
// whether the state changed and the view needs repainting
func (s *State) HandleEvent(ev Event) bool {

	switch ev.Kind {

	case PointerDown:
		s.dragging = true
		s.dragStart = ev.Pos
		return false

	case PointerMove:
		if !s.dragging {
			return false
		}
		s.PanBy(Vec{X: ev.Pos.X - s.dragStart.X, Y: ev.Pos.Y - s.dragStart.Y})
		s.dragStart = ev.Pos
		return true

	case PointerUp:
		s.dragging = false
		return false

	case Wheel:
		before := s.Scale
		s.Zoom(ev.Delta.Y)
		return s.Scale != before

	case Resize:
		s.container = Size{W: ev.Pos.X, H: ev.Pos.Y}
		s.FitToView(s.image, s.container)
		return true
	}

	return false
}
