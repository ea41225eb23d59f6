package editor

// Measurer reports the clickable size of an element. *Renderer implements it
// so hit boxes match what is painted.
type Measurer interface {
	Measure(el TextElement) (w, h float64)
}

// HitTest returns the topmost element whose box, centered on its anchor,
// contains p. Later elements in paint order win.
func HitTest(doc *Document, m Measurer, p Point) (ElementID, bool) {
	for i := len(doc.elements) - 1; i >= 0; i-- {
		el := doc.elements[i]
		w, h := m.Measure(el)
		if p.X >= el.X-w/2 && p.X <= el.X+w/2 &&
			p.Y >= el.Y-h/2 && p.Y <= el.Y+h/2 {
			return el.ID, true
		}
	}
	return "", false
}
