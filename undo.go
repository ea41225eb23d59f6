package main

import "log"

func (m *model) undo() {
	if !m.session.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	log.Printf("undo (%d left)", m.session.History().UndoLen()-1)
	m.clearMessages()
}

func (m *model) redo() {
	if !m.session.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	log.Printf("redo (%d left)", m.session.History().RedoLen())
	m.clearMessages()
}
