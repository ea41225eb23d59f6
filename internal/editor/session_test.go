package editor

import (
	"bytes"
	"errors"
	"testing"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Width = 400
	opts.Height = 400
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Session, text string, x, y float64) ElementID {
	t.Helper()
	id, err := s.AddText(text, x, y)
	if err != nil {
		t.Fatalf("AddText(%q) error = %v", text, err)
	}
	return id
}

func TestNewSessionHasBaseline(t *testing.T) {
	s := newTestSession(t)
	if s.History().UndoLen() != 1 {
		t.Errorf("UndoLen() = %d, want 1", s.History().UndoLen())
	}
	if s.Document().Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Document().Len())
	}
}

func TestNewSessionRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	if _, err := NewSession(opts); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSession() error = %v, want ErrInvalidSize", err)
	}
	opts = DefaultOptions()
	opts.Background = "#zzzzzz"
	if _, err := NewSession(opts); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("NewSession() error = %v, want ErrInvalidColor", err)
	}
}

func TestAddTopAndBottomText(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "Top Text", 200, 100)
	bottom := mustAdd(t, s, "Bottom Text", 200, 300)

	if s.Document().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Document().Len())
	}
	if sel, ok := s.Document().Selected(); !ok || sel != bottom {
		t.Errorf("Selected() = %q, %v; want the second element", sel, ok)
	}
	if s.History().UndoLen() != 3 {
		t.Errorf("UndoLen() = %d, want 3 (baseline + 2)", s.History().UndoLen())
	}
}

func TestAddTextRejectsEmpty(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.AddText("   ", 10, 10); !errors.Is(err, ErrEmptyText) {
		t.Errorf("AddText() error = %v, want ErrEmptyText", err)
	}
	if s.History().UndoLen() != 1 {
		t.Errorf("UndoLen() = %d, want 1", s.History().UndoLen())
	}
}

func TestDragCommitsOnlyOnPointerUp(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	s.Document().ClearSelection()
	before := s.History().UndoLen()

	if !s.PointerDown(Point{X: 200, Y: 100}) {
		t.Fatal("PointerDown() missed the element")
	}
	if sel, _ := s.Document().Selected(); sel != a {
		t.Errorf("Selected() = %q, want %q", sel, a)
	}
	if s.DragState() != DragDragging {
		t.Fatalf("DragState() = %v, want dragging", s.DragState())
	}
	for _, p := range []Point{{X: 210, Y: 110}, {X: 230, Y: 125}, {X: 250, Y: 140}} {
		if !s.PointerMove(p) {
			t.Fatalf("PointerMove(%v) = false", p)
		}
		if s.History().UndoLen() != before {
			t.Fatalf("snapshot pushed during move: UndoLen() = %d", s.History().UndoLen())
		}
	}
	committed, err := s.PointerUp()
	if err != nil || !committed {
		t.Fatalf("PointerUp() = %v, %v", committed, err)
	}
	if s.History().UndoLen() != before+1 {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before+1)
	}
	el, _ := s.Document().Element(a)
	if el.X != 250 || el.Y != 140 {
		t.Errorf("anchor = (%v,%v), want (250,140)", el.X, el.Y)
	}
	if s.DragState() != DragIdle {
		t.Errorf("DragState() = %v, want idle", s.DragState())
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)

	s.PointerDown(Point{X: 190, Y: 95})
	s.PointerMove(Point{X: 290, Y: 195})
	_, _ = s.PointerUp()

	el, _ := s.Document().Element(a)
	if el.X != 300 || el.Y != 200 {
		t.Errorf("anchor = (%v,%v), want (300,200)", el.X, el.Y)
	}
}

func TestDragOnlyMovesCapturedElement(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	b := mustAdd(t, s, "Bottom Text", 200, 300)
	bBefore, _ := s.Document().Element(b)

	s.PointerDown(Point{X: 200, Y: 100})
	// sweep straight across b
	for y := 100.0; y <= 320; y += 10 {
		s.PointerMove(Point{X: 200, Y: y})
	}
	_, _ = s.PointerUp()

	bAfter, _ := s.Document().Element(b)
	if bAfter != bBefore {
		t.Errorf("element b changed: %+v -> %+v", bBefore, bAfter)
	}
	aAfter, _ := s.Document().Element(a)
	if aAfter.Y != 320 {
		t.Errorf("a.Y = %v, want 320", aAfter.Y)
	}
}

func TestPointerDownOnEmptySpaceClearsSelection(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "Top Text", 200, 100)

	if s.PointerDown(Point{X: 5, Y: 395}) {
		t.Fatal("PointerDown() hit empty space")
	}
	if _, ok := s.Document().Selected(); ok {
		t.Error("selection not cleared")
	}
	if s.DragState() != DragIdle {
		t.Errorf("DragState() = %v, want idle", s.DragState())
	}
	if committed, _ := s.PointerUp(); committed {
		t.Error("PointerUp() without a drag committed")
	}
}

func TestPointerLeaveCommits(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	before := s.History().UndoLen()

	s.PointerDown(Point{X: 200, Y: 100})
	s.PointerMove(Point{X: 390, Y: 100})
	committed, err := s.PointerLeave()
	if err != nil || !committed {
		t.Fatalf("PointerLeave() = %v, %v", committed, err)
	}
	if s.History().UndoLen() != before+1 {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before+1)
	}
	el, _ := s.Document().Element(a)
	if el.X != 390 {
		t.Errorf("X = %v, want 390", el.X)
	}
}

func TestCancelDragRestoresPosition(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	before := s.History().UndoLen()

	s.PointerDown(Point{X: 200, Y: 100})
	s.PointerMove(Point{X: 10, Y: 10})
	if !s.CancelDrag() {
		t.Fatal("CancelDrag() = false")
	}
	el, _ := s.Document().Element(a)
	if el.X != 200 || el.Y != 100 {
		t.Errorf("anchor = (%v,%v), want (200,100)", el.X, el.Y)
	}
	if s.History().UndoLen() != before {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before)
	}
}

func TestKeyboardMove(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)

	if err := s.BeginMove(); err != nil {
		t.Fatalf("BeginMove() error = %v", err)
	}
	s.Nudge(5, 0)
	s.Nudge(5, -3)
	if _, err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}
	el, _ := s.Document().Element(a)
	if el.X != 210 || el.Y != 97 {
		t.Errorf("anchor = (%v,%v), want (210,97)", el.X, el.Y)
	}

	s.Document().ClearSelection()
	if err := s.BeginMove(); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("BeginMove() error = %v, want ErrNothingSelected", err)
	}
}

func TestUndoAtBaselineAcknowledged(t *testing.T) {
	s := newTestSession(t)
	before, _ := s.Document().Snapshot()
	if s.Undo() {
		t.Error("Undo() = true at baseline")
	}
	after, _ := s.Document().Snapshot()
	if !bytes.Equal(before, after) {
		t.Error("document changed")
	}
}

func TestToggleOutlineTwice(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	original, _ := s.Document().Element(a)
	before := s.History().UndoLen()

	if err := s.ToggleOutline(); err != nil {
		t.Fatalf("ToggleOutline() error = %v", err)
	}
	if err := s.ToggleOutline(); err != nil {
		t.Fatalf("ToggleOutline() error = %v", err)
	}
	el, _ := s.Document().Element(a)
	if el.OutlineEnabled != original.OutlineEnabled {
		t.Errorf("OutlineEnabled = %v, want %v", el.OutlineEnabled, original.OutlineEnabled)
	}
	if s.History().UndoLen() != before+2 {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before+2)
	}
}

func TestStyleCommands(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)

	if err := s.ToggleShadow(); err != nil {
		t.Fatalf("ToggleShadow() error = %v", err)
	}
	if err := s.ToggleBold(); err != nil {
		t.Fatalf("ToggleBold() error = %v", err)
	}
	if err := s.AdjustFontSize(8); err != nil {
		t.Fatalf("AdjustFontSize() error = %v", err)
	}
	if err := s.SetFillColor("#ff006e"); err != nil {
		t.Fatalf("SetFillColor() error = %v", err)
	}
	if err := s.SetStrokeColor("#bf00ff"); err != nil {
		t.Fatalf("SetStrokeColor() error = %v", err)
	}
	if err := s.CycleFontFamily(); err != nil {
		t.Fatalf("CycleFontFamily() error = %v", err)
	}

	el, _ := s.Document().Element(a)
	if el.ShadowEnabled {
		t.Error("shadow still enabled")
	}
	if el.FontWeight != WeightNormal {
		t.Errorf("FontWeight = %q, want normal", el.FontWeight)
	}
	if el.FontSize != 40 {
		t.Errorf("FontSize = %d, want 40", el.FontSize)
	}
	if el.FillColor != "#ff006e" || el.StrokeColor != "#bf00ff" {
		t.Errorf("colors = %s/%s", el.FillColor, el.StrokeColor)
	}
	if el.FontFamily != FamilyMono {
		t.Errorf("FontFamily = %q, want mono", el.FontFamily)
	}
}

func TestAdjustFontSizeClamps(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "x", 0, 0)
	if err := s.AdjustFontSize(-1000); err != nil {
		t.Fatalf("AdjustFontSize() error = %v", err)
	}
	el, _ := s.Document().Element(a)
	if el.FontSize != MinFontSize {
		t.Errorf("FontSize = %d, want %d", el.FontSize, MinFontSize)
	}
	before := s.History().UndoLen()
	_ = s.AdjustFontSize(-1)
	if s.History().UndoLen() != before {
		t.Error("clamped no-op change was committed")
	}
}

func TestStyleWithNothingSelected(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "x", 0, 0)
	s.Document().ClearSelection()
	before := s.History().UndoLen()

	cmds := map[string]func() error{
		"ToggleShadow":    s.ToggleShadow,
		"ToggleOutline":   s.ToggleOutline,
		"ToggleBold":      s.ToggleBold,
		"CycleFontFamily": s.CycleFontFamily,
		"DeleteSelected":  s.DeleteSelected,
		"RaiseSelected":   s.RaiseSelected,
		"LowerSelected":   s.LowerSelected,
		"SetFontSize":     func() error { return s.SetFontSize(12) },
	}
	for name, cmd := range cmds {
		if err := cmd(); !errors.Is(err, ErrNothingSelected) {
			t.Errorf("%s() error = %v, want ErrNothingSelected", name, err)
		}
	}
	if s.History().UndoLen() != before {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before)
	}
}

func TestEditText(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	before := s.History().UndoLen()

	if err := s.EditText(a, ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("EditText(empty) error = %v, want ErrEmptyText", err)
	}
	if err := s.EditText(a, "Top Text"); err != nil {
		t.Errorf("EditText(unchanged) error = %v", err)
	}
	if s.History().UndoLen() != before {
		t.Fatalf("UndoLen() = %d, want %d", s.History().UndoLen(), before)
	}
	if err := s.EditText(a, "New Text"); err != nil {
		t.Fatalf("EditText() error = %v", err)
	}
	if s.History().UndoLen() != before+1 {
		t.Errorf("UndoLen() = %d, want %d", s.History().UndoLen(), before+1)
	}
	if err := s.EditText("missing", "x"); !errors.Is(err, ErrNoElement) {
		t.Errorf("EditText(missing) error = %v, want ErrNoElement", err)
	}
}

func TestDoubleClick(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	s.Document().ClearSelection()

	var seeded string
	changed, err := s.DoubleClick(Point{X: 200, Y: 100}, func(current string) (string, bool) {
		seeded = current
		return "Edited", true
	})
	if err != nil || !changed {
		t.Fatalf("DoubleClick() = %v, %v", changed, err)
	}
	if seeded != "Top Text" {
		t.Errorf("prompt seeded with %q, want Top Text", seeded)
	}
	el, _ := s.Document().Element(a)
	if el.Text != "Edited" {
		t.Errorf("Text = %q, want Edited", el.Text)
	}

	before := s.History().UndoLen()
	changed, err = s.DoubleClick(Point{X: 200, Y: 100}, func(string) (string, bool) {
		return "ignored", false
	})
	if err != nil || changed {
		t.Errorf("cancelled DoubleClick() = %v, %v", changed, err)
	}
	if s.History().UndoLen() != before {
		t.Error("cancelled edit was committed")
	}

	changed, _ = s.DoubleClick(Point{X: 5, Y: 395}, func(string) (string, bool) {
		t.Error("prompt opened on empty space")
		return "", false
	})
	if changed {
		t.Error("DoubleClick on empty space changed the document")
	}
}

func TestDeleteAndUndo(t *testing.T) {
	s := newTestSession(t)
	a := mustAdd(t, s, "Top Text", 200, 100)
	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("DeleteSelected() error = %v", err)
	}
	if _, ok := s.Document().Element(a); ok {
		t.Fatal("element still present")
	}
	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if _, ok := s.Document().Element(a); !ok {
		t.Error("undo did not restore the element")
	}
	if _, ok := s.Document().Selected(); ok {
		t.Error("undo should clear the selection")
	}
}

func TestResetAndStartOver(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "Top Text", 200, 100)
	mustAdd(t, s, "Bottom Text", 200, 300)

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if s.Document().Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Document().Len())
	}
	if !s.Undo() || s.Document().Len() != 2 {
		t.Error("Reset should be undoable")
	}

	if err := s.StartOver(640, 360); err != nil {
		t.Fatalf("StartOver() error = %v", err)
	}
	if s.Document().Width() != 640 || s.Document().Height() != 360 {
		t.Errorf("size = %dx%d", s.Document().Width(), s.Document().Height())
	}
	if s.History().UndoLen() != 1 || s.History().RedoLen() != 0 {
		t.Errorf("stacks = %d/%d, want 1/0", s.History().UndoLen(), s.History().RedoLen())
	}
}

func TestResizeCommits(t *testing.T) {
	s := newTestSession(t)
	if err := s.Resize(300, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if s.Document().Width() != 400 {
		t.Errorf("Width() = %d, want 400", s.Document().Width())
	}
}

func TestUndoAbandonsDrag(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "Top Text", 200, 100)
	s.PointerDown(Point{X: 200, Y: 100})
	s.PointerMove(Point{X: 250, Y: 100})

	s.Undo()
	if s.DragState() != DragIdle {
		t.Errorf("DragState() = %v, want idle", s.DragState())
	}
	if s.PointerMove(Point{X: 0, Y: 0}) {
		t.Error("PointerMove() after undo moved something")
	}
}

func TestRedoWithEmptyStackRevertsDrag(t *testing.T) {
	s := newTestSession(t)
	id := mustAdd(t, s, "Top Text", 200, 100)
	before, _ := s.Document().Snapshot()

	s.PointerDown(Point{X: 200, Y: 100})
	s.PointerMove(Point{X: 250, Y: 140})
	if s.Redo() {
		t.Fatal("Redo() = true with an empty redo stack")
	}

	el, _ := s.Document().Element(id)
	if el.X != 200 || el.Y != 100 {
		t.Errorf("anchor = (%v,%v), want (200,100)", el.X, el.Y)
	}
	after, _ := s.Document().Snapshot()
	if !bytes.Equal(before, after) {
		t.Error("document differs from the last committed snapshot")
	}
	if committed, err := s.PointerUp(); committed || err != nil {
		t.Errorf("PointerUp() = %v, %v; want false, nil", committed, err)
	}
	if s.History().UndoLen() != 2 {
		t.Errorf("UndoLen() = %d, want 2", s.History().UndoLen())
	}
}

func TestUndoDuringDragKeepsRedoClean(t *testing.T) {
	s := newTestSession(t)
	id := mustAdd(t, s, "Top Text", 200, 100)

	s.PointerDown(Point{X: 200, Y: 100})
	s.PointerMove(Point{X: 250, Y: 140})
	if !s.Undo() {
		t.Fatal("Undo() = false, want the add undone")
	}
	if !s.Redo() {
		t.Fatal("Redo() = false")
	}
	el, ok := s.Document().Element(id)
	if !ok {
		t.Fatal("element missing after Redo()")
	}
	if el.X != 200 || el.Y != 100 {
		t.Errorf("anchor = (%v,%v), want (200,100)", el.X, el.Y)
	}
}

func TestExport(t *testing.T) {
	s := newTestSession(t)
	mustAdd(t, s, "Top Text", 200, 100)
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("export is not a PNG")
	}
}
