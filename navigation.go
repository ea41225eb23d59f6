package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMoveKey drives a keyboard drag of the selected element.
func (m *model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "enter":
		committed, err := m.session.PointerUp()
		if err != nil {
			m.errorMessage = err.Error()
		} else if committed {
			log.Printf("move committed")
		}
		m.mode = ModeNormal
		return m, nil
	case "esc":
		m.session.CancelDrag()
		m.mode = ModeNormal
		return m, nil
	}

	speed := m.getMoveSpeed(key)
	dx, dy := 0.0, 0.0
	switch key {
	case "h", "left", "H", "shift+left":
		dx = -speed
	case "l", "right", "L", "shift+right":
		dx = speed
	case "k", "up", "K", "shift+up":
		dy = -speed
	case "j", "down", "J", "shift+down":
		dy = speed
	default:
		return m, nil
	}
	m.session.Nudge(dx, dy)
	if el, ok := m.session.Selected(); ok {
		m.cursor = el.Anchor()
	}
	return m, nil
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return moveStepFast
	default:
		return moveStep
	}
}
