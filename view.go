package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"memegen/internal/editor"
	"memegen/internal/templates"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff006e")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8eff00"))
	pickedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00f5ff")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var helpLines = []string{
	"memegen Help",
	"============",
	"",
	"Mouse:",
	"------",
	"  Click text        Select it and start dragging",
	"  Click empty space Clear selection and set the insert point",
	"  Double-click text Edit it",
	"  Wheel             Grow or shrink the selected text",
	"",
	"Text:",
	"-----",
	"  a                 Add text at the insert point",
	"  e / Enter         Edit selected text",
	"  m                 Move selected text with h/j/k/l or arrows (Shift=faster)",
	"  x / Delete        Delete selected text",
	"  Ctrl+V            Paste clipboard as new text",
	"",
	"Style:",
	"------",
	"  b                 Toggle bold",
	"  s                 Toggle shadow",
	"  o                 Toggle outline",
	"  + / -             Font size up / down",
	"  c / C             Cycle fill / outline color",
	"  f                 Cycle font family",
	"  [ / ]             Send backward / bring forward",
	"",
	"Canvas:",
	"-------",
	"  t                 Pick a template",
	"  r                 Clear the canvas",
	"  u / U             Undo / redo",
	"  p / P             Export PNG / PDF",
	"  y                 Save PNG and copy its path to the clipboard",
	"",
	"General:",
	"--------",
	"  Esc               Clear selection / cancel",
	"  ?                 Toggle this help screen",
	"  q / Ctrl+C        Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	var result strings.Builder
	if m.mode == ModeTemplates {
		result.WriteString(m.templatesView())
	} else {
		result.WriteString(m.renderPreview())
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		verb := "ADD"
		if m.textTarget != "" {
			verb = "EDIT"
		}
		status := fmt.Sprintf("Mode: %s | Text: %s | ←/→=move cursor, Enter=save, Esc=cancel", verb, withCursor(m.textInputText, m.textInputCursorPos))
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status
	case ModeMove:
		el, _ := m.session.Selected()
		return fmt.Sprintf("Mode: MOVE | %q at (%.0f,%.0f) | hjkl/arrows=move, Enter=finish, Esc=cancel", el.Text, el.X, el.Y)
	case ModeFileInput:
		op := "Export PNG"
		if m.fileOp == FileOpExportPDF {
			op = "Export PDF"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | %s | %s filename: %s | Enter=retry, Esc=cancel", errorStyle.Render("ERROR: "+m.errorMessage), op, m.filename)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", op, m.filename)
	case ModeTemplates:
		return "Mode: TEMPLATES | j/k=choose, Enter=use, Esc=back"
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit memegen? Unsaved changes will be lost. (y/n)"
		case ConfirmReset:
			message = "Clear the canvas? (y/n)"
		case ConfirmTemplate:
			message = "Start over with this template? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	doc := m.session.Document()
	status := fmt.Sprintf("Mode: NORMAL | Canvas: %dx%d", doc.Width(), doc.Height())
	if el, ok := m.session.Selected(); ok {
		status += " | " + describeElement(el)
	}
	if m.session.DragState() == editor.DragDragging {
		status += " | dragging"
	}
	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func describeElement(el editor.TextElement) string {
	var flags []string
	if el.FontWeight == editor.WeightBold {
		flags = append(flags, "bold")
	}
	if el.ShadowEnabled {
		flags = append(flags, "shadow")
	}
	if el.OutlineEnabled {
		flags = append(flags, "outline")
	}
	desc := fmt.Sprintf("Selected: %q %dpx %s %s", el.Text, el.FontSize, el.FontFamily, el.FillColor)
	if len(flags) > 0 {
		desc += " " + strings.Join(flags, ",")
	}
	return desc
}

// withCursor draws a block cursor over the rune at pos.
func withCursor(text string, pos int) string {
	runes := []rune(text)
	if pos >= len(runes) {
		return text + "█"
	}
	if pos < 0 {
		pos = 0
	}
	runes[pos] = '█'
	return string(runes)
}

func (m model) templatesView() string {
	_, rows := m.previewArea()
	var b strings.Builder
	b.WriteString("Pick a template:\n")
	b.WriteString(strings.Repeat("─", max(m.width, 1)))
	b.WriteString("\n")

	all := m.catalog.All()
	maxRows := rows - 2
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if m.templateIndex >= maxRows {
		start = m.templateIndex - maxRows + 1
	}
	end := min(start+maxRows, len(all))
	for i := start; i < end; i++ {
		line := templateLine(all[i])
		if i == m.templateIndex {
			b.WriteString(pickedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func templateLine(t templates.Template) string {
	return fmt.Sprintf("%-22s %-5s %-11s %s", t.Name, t.AspectRatio, t.Category,
		dimStyle.Render(t.Description+", "+templates.FormatUsage(t)))
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += fmt.Sprintf("\nHelp (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
