package editor

import "fmt"

type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	}
	return "unknown"
}

// Drag is the pointer state machine. It only ever moves the element it
// captured on pointer down. Committing to history is the caller's job.
type Drag struct {
	state  DragState
	target ElementID
	grab   Point // anchor minus pointer at pointer down
	origin Point // anchor at pointer down, for Cancel
}

func (d *Drag) State() DragState { return d.state }

// Target returns the captured element while dragging.
func (d *Drag) Target() (ElementID, bool) {
	if d.state != DragDragging {
		return "", false
	}
	return d.target, true
}

// Down hit-tests p. On a hit the element is selected and captured; on a
// miss the selection is cleared. A Down while already dragging restarts
// the capture.
func (d *Drag) Down(doc *Document, m Measurer, p Point) bool {
	id, ok := HitTest(doc, m, p)
	if !ok {
		doc.ClearSelection()
		d.reset()
		return false
	}
	return d.Capture(doc, id, p) == nil
}

// Capture starts a drag on a known element as if the pointer went down at
// p. Keyboard moves use it with p at the element's anchor.
func (d *Drag) Capture(doc *Document, id ElementID, p Point) error {
	el, ok := doc.Element(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	doc.selected = id
	d.state = DragDragging
	d.target = id
	d.grab = Point{X: el.X - p.X, Y: el.Y - p.Y}
	d.origin = el.Anchor()
	return nil
}

// Move repositions the captured element so the grab offset is kept.
func (d *Drag) Move(doc *Document, p Point) bool {
	if d.state != DragDragging {
		return false
	}
	if err := doc.MoveElement(d.target, p.X+d.grab.X, p.Y+d.grab.Y); err != nil {
		d.reset()
		return false
	}
	return true
}

// Up ends the drag. It reports whether a drag was in progress, which is
// when the caller must commit.
func (d *Drag) Up() bool {
	if d.state != DragDragging {
		return false
	}
	d.reset()
	return true
}

// Cancel ends the drag and puts the element back where it started.
func (d *Drag) Cancel(doc *Document) bool {
	if d.state != DragDragging {
		return false
	}
	_ = doc.MoveElement(d.target, d.origin.X, d.origin.Y)
	d.reset()
	return true
}

func (d *Drag) reset() {
	d.state = DragIdle
	d.target = ""
	d.grab = Point{}
	d.origin = Point{}
}
