package editor

import (
	"fmt"
	"image"
	"strings"
)

const (
	DefaultCanvasWidth  = 600
	DefaultCanvasHeight = 600
)

type Options struct {
	Width        int
	Height       int
	HistoryDepth int
	Background   string
}

func DefaultOptions() Options {
	return Options{
		Width:        DefaultCanvasWidth,
		Height:       DefaultCanvasHeight,
		HistoryDepth: DefaultHistoryDepth,
		Background:   DefaultBackground,
	}
}

// Session is one editing session: it owns the document, its history, the
// drag state and the renderer. Every committed mutation goes through it.
type Session struct {
	doc      *Document
	history  *History
	renderer *Renderer
	drag     Drag
}

// Prompt asks the user for replacement text, seeded with the current text.
// It returns false when the user cancels.
type Prompt func(current string) (string, bool)

// NewSession creates an empty document and records it as the history
// baseline.
func NewSession(opts Options) (*Session, error) {
	doc, err := NewDocument(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(RenderOptions{Background: opts.Background})
	if err != nil {
		return nil, err
	}
	s := &Session{
		doc:      doc,
		history:  NewHistory(opts.HistoryDepth),
		renderer: renderer,
	}
	if err := s.history.Commit(doc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Document() *Document  { return s.doc }
func (s *Session) History() *History    { return s.history }
func (s *Session) Renderer() *Renderer  { return s.renderer }
func (s *Session) DragState() DragState { return s.drag.State() }

// Selected returns a copy of the selected element.
func (s *Session) Selected() (TextElement, bool) {
	id, ok := s.doc.Selected()
	if !ok {
		return TextElement{}, false
	}
	return s.doc.Element(id)
}

func (s *Session) commit() error {
	return s.history.Commit(s.doc)
}

func (s *Session) selectedID() (ElementID, error) {
	id, ok := s.doc.Selected()
	if !ok {
		return "", ErrNothingSelected
	}
	return id, nil
}

// AddText places a new default-styled element at (x, y) and selects it.
func (s *Session) AddText(text string, x, y float64) (ElementID, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	id := s.doc.AddTextElement(text, x, y)
	return id, s.commit()
}

// EditText replaces the text of id. Unchanged text commits nothing; empty
// text is refused.
func (s *Session) EditText(id ElementID, text string) error {
	el, ok := s.doc.Element(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoElement, id)
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if el.Text == text {
		return nil
	}
	if err := s.doc.SetText(id, text); err != nil {
		return err
	}
	return s.commit()
}

// ApplyStyle merges patch into the selected element and commits.
func (s *Session) ApplyStyle(patch StylePatch) error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	if err := s.doc.UpdateElement(id, patch); err != nil {
		return err
	}
	return s.commit()
}

func (s *Session) ToggleShadow() error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	return s.ApplyStyle(StylePatch{ShadowEnabled: Ptr(!el.ShadowEnabled)})
}

func (s *Session) ToggleOutline() error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	return s.ApplyStyle(StylePatch{OutlineEnabled: Ptr(!el.OutlineEnabled)})
}

func (s *Session) ToggleBold() error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	weight := WeightBold
	if el.FontWeight == WeightBold {
		weight = WeightNormal
	}
	return s.ApplyStyle(StylePatch{FontWeight: &weight})
}

func (s *Session) SetFontSize(size int) error {
	return s.ApplyStyle(StylePatch{FontSize: &size})
}

// AdjustFontSize changes the selected element's size by delta, clamped to
// [MinFontSize, MaxFontSize].
func (s *Session) AdjustFontSize(delta int) error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	size := el.FontSize + delta
	if size < MinFontSize {
		size = MinFontSize
	}
	if size > MaxFontSize {
		size = MaxFontSize
	}
	if size == el.FontSize {
		return nil
	}
	return s.SetFontSize(size)
}

func (s *Session) SetFillColor(hex string) error {
	return s.ApplyStyle(StylePatch{FillColor: &hex})
}

func (s *Session) SetStrokeColor(hex string) error {
	return s.ApplyStyle(StylePatch{StrokeColor: &hex})
}

func (s *Session) CycleFontFamily() error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	return s.ApplyStyle(StylePatch{FontFamily: Ptr(NextFamily(el.FontFamily))})
}

func (s *Session) DeleteSelected() error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	if err := s.doc.RemoveElement(id); err != nil {
		return err
	}
	return s.commit()
}

// RaiseSelected brings the selected element one step forward. Nothing is
// committed when it is already on top.
func (s *Session) RaiseSelected() error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	moved, err := s.doc.Raise(id)
	if err != nil || !moved {
		return err
	}
	return s.commit()
}

func (s *Session) LowerSelected() error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	moved, err := s.doc.Lower(id)
	if err != nil || !moved {
		return err
	}
	return s.commit()
}

func (s *Session) Resize(width, height int) error {
	if err := s.doc.Resize(width, height); err != nil {
		return err
	}
	return s.commit()
}

// Reset removes every element and commits the empty canvas.
func (s *Session) Reset() error {
	s.drag.reset()
	s.doc.RemoveAll()
	return s.commit()
}

// StartOver clears the canvas at a new size and makes that the history
// baseline, dropping undo and redo.
func (s *Session) StartOver(width, height int) error {
	if err := s.doc.Resize(width, height); err != nil {
		return err
	}
	s.drag.reset()
	s.doc.RemoveAll()
	return s.history.Reset(s.doc)
}

// Undo reports false when there is nothing to undo. An active drag is
// cancelled first so the document matches the history top again.
func (s *Session) Undo() bool {
	s.drag.Cancel(s.doc)
	return s.history.Undo(s.doc)
}

func (s *Session) Redo() bool {
	s.drag.Cancel(s.doc)
	return s.history.Redo(s.doc)
}

// PointerDown selects and captures the topmost element under p.
func (s *Session) PointerDown(p Point) bool {
	return s.drag.Down(s.doc, s.renderer, p)
}

func (s *Session) PointerMove(p Point) bool {
	return s.drag.Move(s.doc, p)
}

// PointerUp ends a drag and commits the final position.
func (s *Session) PointerUp() (bool, error) {
	if !s.drag.Up() {
		return false, nil
	}
	return true, s.commit()
}

// PointerLeave is treated like PointerUp: the element stays where it was
// last moved and that position is committed.
func (s *Session) PointerLeave() (bool, error) {
	return s.PointerUp()
}

// CancelDrag puts the captured element back without committing.
func (s *Session) CancelDrag() bool {
	return s.drag.Cancel(s.doc)
}

// BeginMove captures the selected element for keyboard moves.
func (s *Session) BeginMove() error {
	el, ok := s.Selected()
	if !ok {
		return ErrNothingSelected
	}
	return s.drag.Capture(s.doc, el.ID, el.Anchor())
}

// Nudge shifts the captured element by (dx, dy).
func (s *Session) Nudge(dx, dy float64) bool {
	id, ok := s.drag.Target()
	if !ok {
		return false
	}
	el, ok := s.doc.Element(id)
	if !ok {
		return false
	}
	return s.drag.Move(s.doc, Point{X: el.X + dx - s.drag.grab.X, Y: el.Y + dy - s.drag.grab.Y})
}

// TextTarget hit-tests p for a text edit. The element found is selected.
func (s *Session) TextTarget(p Point) (TextElement, bool) {
	id, ok := HitTest(s.doc, s.renderer, p)
	if !ok {
		return TextElement{}, false
	}
	s.doc.selected = id
	return s.doc.Element(id)
}

// DoubleClick edits the element under p through prompt. It reports whether
// the text changed.
func (s *Session) DoubleClick(p Point, prompt Prompt) (bool, error) {
	el, ok := s.TextTarget(p)
	if !ok {
		return false, nil
	}
	text, ok := prompt(el.Text)
	if !ok || text == el.Text {
		return false, nil
	}
	if err := s.EditText(el.ID, text); err != nil {
		return false, err
	}
	return true, nil
}

// Render paints the document with the selection box, for display.
func (s *Session) Render() image.Image {
	return s.renderer.Render(s.doc, true)
}

// Export returns PNG bytes of the document without the selection box.
func (s *Session) Export() ([]byte, error) {
	return s.renderer.RenderToImage(s.doc)
}
