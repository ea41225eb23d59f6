package editor

const (
	DefaultHistoryDepth = 50
	MinHistoryDepth     = 20
)

// History keeps two stacks of document snapshots. The bottom of the undo
// stack is the baseline and is never undone past.
type History struct {
	undoStack [][]byte
	redoStack [][]byte
	depth     int
}

func NewHistory(depth int) *History {
	if depth < MinHistoryDepth {
		depth = MinHistoryDepth
	}
	return &History{
		undoStack: make([][]byte, 0, depth),
		redoStack: make([][]byte, 0),
		depth:     depth,
	}
}

func (h *History) Depth() int    { return h.depth }
func (h *History) UndoLen() int  { return len(h.undoStack) }
func (h *History) RedoLen() int  { return len(h.redoStack) }
func (h *History) CanUndo() bool { return len(h.undoStack) > 1 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Commit records the current state of doc.
func (h *History) Commit(doc *Document) error {
	snap, err := doc.Snapshot()
	if err != nil {
		return err
	}
	h.undoStack = append(h.undoStack, snap)
	h.redoStack = h.redoStack[:0]
	if len(h.undoStack) > h.depth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.depth:]
	}
	return nil
}

// Undo restores the previous state. It reports false when only the
// baseline is left.
func (h *History) Undo(doc *Document) bool {
	if len(h.undoStack) < 2 {
		return false
	}
	lastIndex := len(h.undoStack) - 1
	current := h.undoStack[lastIndex]
	if err := doc.Restore(h.undoStack[lastIndex-1]); err != nil {
		return false
	}
	h.undoStack = h.undoStack[:lastIndex]
	h.redoStack = append(h.redoStack, current)
	return true
}

func (h *History) Redo(doc *Document) bool {
	if len(h.redoStack) == 0 {
		return false
	}
	lastIndex := len(h.redoStack) - 1
	next := h.redoStack[lastIndex]
	if err := doc.Restore(next); err != nil {
		return false
	}
	h.redoStack = h.redoStack[:lastIndex]
	h.undoStack = append(h.undoStack, next)
	if len(h.undoStack) > h.depth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.depth:]
	}
	return true
}

// Reset drops both stacks and makes the current state the new baseline.
func (h *History) Reset(doc *Document) error {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
	return h.Commit(doc)
}
