package editor

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Document is the editable meme: canvas size plus text elements in paint
// order, later elements on top.
type Document struct {
	width    int
	height   int
	elements []TextElement
	selected ElementID
}

// MaxCanvasSize caps each canvas side; the raster is allocated in full.
const MaxCanvasSize = 8192

// ValidateSize accepts sides in [1, MaxCanvasSize].
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxCanvasSize || height > MaxCanvasSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

func NewDocument(width, height int) (*Document, error) {
	if err := ValidateSize(width, height); err != nil {
		return nil, err
	}
	return &Document{
		width:    width,
		height:   height,
		elements: make([]TextElement, 0),
	}, nil
}

func (d *Document) Width() int  { return d.width }
func (d *Document) Height() int { return d.height }

// Elements returns a copy of the elements in paint order.
func (d *Document) Elements() []TextElement {
	out := make([]TextElement, len(d.elements))
	copy(out, d.elements)
	return out
}

func (d *Document) Len() int {
	return len(d.elements)
}

func (d *Document) indexOf(id ElementID) int {
	for i := range d.elements {
		if d.elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) Element(id ElementID) (TextElement, bool) {
	idx := d.indexOf(id)
	if idx == -1 {
		return TextElement{}, false
	}
	return d.elements[idx], true
}

// AddTextElement appends a default-styled element and selects it.
func (d *Document) AddTextElement(text string, x, y float64) ElementID {
	id := ElementID(uuid.NewString())
	d.elements = append(d.elements, newTextElement(id, text, x, y))
	d.selected = id
	return id
}

func (d *Document) UpdateElement(id ElementID, patch StylePatch) error {
	idx := d.indexOf(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	if err := patch.validate(); err != nil {
		return err
	}
	patch.apply(&d.elements[idx])
	return nil
}

// SetText replaces an element's text. Empty text is allowed here; the
// element keeps its anchor but measures zero wide, so it is hit only on its
// anchor column.
func (d *Document) SetText(id ElementID, text string) error {
	idx := d.indexOf(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	d.elements[idx].Text = text
	return nil
}

func (d *Document) MoveElement(id ElementID, x, y float64) error {
	idx := d.indexOf(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	d.elements[idx].X = x
	d.elements[idx].Y = y
	return nil
}

func (d *Document) RemoveElement(id ElementID) error {
	idx := d.indexOf(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	d.elements = append(d.elements[:idx], d.elements[idx+1:]...)
	if d.selected == id {
		d.selected = ""
	}
	return nil
}

// Raise moves an element one step towards the top of the paint order.
// It reports false when the element is already on top.
func (d *Document) Raise(id ElementID) (bool, error) {
	idx := d.indexOf(id)
	if idx == -1 {
		return false, fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	if idx == len(d.elements)-1 {
		return false, nil
	}
	d.elements[idx], d.elements[idx+1] = d.elements[idx+1], d.elements[idx]
	return true, nil
}

// Lower moves an element one step towards the bottom of the paint order.
func (d *Document) Lower(id ElementID) (bool, error) {
	idx := d.indexOf(id)
	if idx == -1 {
		return false, fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	if idx == 0 {
		return false, nil
	}
	d.elements[idx], d.elements[idx-1] = d.elements[idx-1], d.elements[idx]
	return true, nil
}

func (d *Document) RemoveAll() {
	d.elements = d.elements[:0]
	d.selected = ""
}

// Resize changes the canvas only; elements keep their coordinates.
func (d *Document) Resize(width, height int) error {
	if err := ValidateSize(width, height); err != nil {
		return err
	}
	d.width = width
	d.height = height
	return nil
}

func (d *Document) Select(id ElementID) error {
	if d.indexOf(id) == -1 {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	d.selected = id
	return nil
}

func (d *Document) ClearSelection() {
	d.selected = ""
}

// Selected returns the selected element id, if any.
func (d *Document) Selected() (ElementID, bool) {
	if d.selected == "" {
		return "", false
	}
	return d.selected, true
}

type snapshot struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Elements []TextElement `json:"elements"`
}

// Snapshot serializes everything except the selection.
func (d *Document) Snapshot() ([]byte, error) {
	data, err := json.Marshal(snapshot{
		Width:    d.width,
		Height:   d.height,
		Elements: d.elements,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the document with a snapshot and clears the selection.
func (d *Document) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Elements == nil {
		snap.Elements = make([]TextElement, 0)
	}
	d.width = snap.Width
	d.height = snap.Height
	d.elements = snap.Elements
	d.selected = ""
	return nil
}
