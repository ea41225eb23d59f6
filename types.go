package main

import (
	"time"

	"memegen/internal/editor"
	"memegen/internal/templates"
)

type model struct {
	width              int
	height             int
	session            *editor.Session
	catalog            *templates.Catalog
	config             *Config
	mode               Mode
	help               bool
	helpScroll         int
	cursor             editor.Point
	textTarget         editor.ElementID
	textInputText      string
	textInputCursorPos int
	filename           string
	fileOp             FileOperation
	confirmAction      ConfirmAction
	templateIndex      int
	pendingTemplate    string
	mouseDown          bool
	lastClick          cell
	lastClickAt        time.Time
	errorMessage       string
	successMessage     string
	frame              *frameCache
	now                func() time.Time
}

type cell struct {
	X, Y int
}

// shareDoneMsg reports the result of a share command.
type shareDoneMsg struct {
	path string
	err  error
}

func initialModel(cfg *Config) (model, error) {
	session, err := editor.NewSession(cfg.SessionOptions())
	if err != nil {
		return model{}, err
	}
	m := model{
		session:   session,
		catalog:   templates.NewCatalog(),
		config:    cfg,
		mode:      ModeNormal,
		frame:     &frameCache{},
		lastClick: cell{X: -1, Y: -1},
		now:       time.Now,
	}
	m.centerCursor()
	return m, nil
}

func (m *model) centerCursor() {
	doc := m.session.Document()
	m.cursor = editor.Point{X: float64(doc.Width()) / 2, Y: float64(doc.Height()) / 2}
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

// previewArea is the terminal area left for the canvas above the status line.
func (m model) previewArea() (int, int) {
	cols, rows := m.width, m.height-1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m model) viewport() viewport {
	doc := m.session.Document()
	cols, rows := m.previewArea()
	return fitViewport(doc.Width(), doc.Height(), cols, rows)
}
