package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"memegen/internal/editor"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "memegen",
		Short:         "Compose memes from draggable, styled text in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath(), "config file")
	root.AddCommand(newRenderCmd(), newTemplatesCmd())
	return root
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "memegen")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := initialModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shareDoneMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Error sharing: %s", msg.err.Error())
			return m, nil
		}
		log.Printf("shared %s", msg.path)
		m.successMessage = fmt.Sprintf("Saved %s, path copied to clipboard", msg.path)
		m.errorMessage = ""
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeTextInput:
			return m.handleTextInputKey(msg)
		case ModeMove:
			return m.handleMoveKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeTemplates:
			return m.handleTemplateKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

// report turns a session error into a status line message.
func (m *model) report(err error) {
	switch {
	case err == nil:
		m.clearMessages()
	case errors.Is(err, editor.ErrNothingSelected):
		m.errorMessage = "Nothing selected"
		m.successMessage = ""
	case errors.Is(err, editor.ErrEmptyText):
		m.errorMessage = "Text cannot be empty"
		m.successMessage = ""
	default:
		m.errorMessage = err.Error()
		m.successMessage = ""
	}
}

func (m *model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.config.Confirmations && m.session.History().CanUndo() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		m.session.Document().ClearSelection()
		m.clearMessages()
	case "a":
		m.openTextInput("", "")
	case "e", "enter":
		el, ok := m.session.Selected()
		if !ok {
			m.report(editor.ErrNothingSelected)
			return m, nil
		}
		m.openTextInput(el.ID, el.Text)
	case "m":
		if err := m.session.BeginMove(); err != nil {
			m.report(err)
			return m, nil
		}
		m.clearMessages()
		m.mode = ModeMove
	case "x", "delete":
		m.report(m.session.DeleteSelected())
	case "b":
		m.report(m.session.ToggleBold())
	case "s":
		m.report(m.session.ToggleShadow())
	case "o":
		m.report(m.session.ToggleOutline())
	case "+", "=":
		m.report(m.session.AdjustFontSize(fontSizeStep))
	case "-", "_":
		m.report(m.session.AdjustFontSize(-fontSizeStep))
	case "c":
		if el, ok := m.session.Selected(); ok {
			m.report(m.session.SetFillColor(nextPaletteColor(el.FillColor)))
		} else {
			m.report(editor.ErrNothingSelected)
		}
	case "C":
		if el, ok := m.session.Selected(); ok {
			m.report(m.session.SetStrokeColor(nextPaletteColor(el.StrokeColor)))
		} else {
			m.report(editor.ErrNothingSelected)
		}
	case "f":
		m.report(m.session.CycleFontFamily())
	case "[":
		m.report(m.session.LowerSelected())
	case "]":
		m.report(m.session.RaiseSelected())
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y", "ctrl+r":
		m.redo()
	case "r":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmReset
			return m, nil
		}
		m.reset()
	case "t":
		m.mode = ModeTemplates
		m.templateIndex = 0
		m.clearMessages()
	case "p":
		m.mode = ModeFileInput
		m.fileOp = FileOpExportPNG
		m.filename = ""
		m.clearMessages()
	case "P":
		m.mode = ModeFileInput
		m.fileOp = FileOpExportPDF
		m.filename = ""
		m.clearMessages()
	case "y":
		data, err := m.session.Export()
		if err != nil {
			m.report(err)
			return m, nil
		}
		return m, shareImage(data, m.config.SaveDirectory, m.now())
	case "ctrl+v":
		m.pasteAsText()
	}
	return m, nil
}

func nextPaletteColor(current string) string {
	for i, c := range palette {
		if strings.EqualFold(c, current) {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

func (m *model) reset() {
	if err := m.session.Reset(); err != nil {
		m.report(err)
		return
	}
	log.Printf("canvas reset")
	m.clearMessages()
	m.successMessage = "Canvas cleared"
}

func (m *model) pasteAsText() {
	raw, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error reading clipboard: %s", err.Error())
		return
	}
	text := pastedText(raw)
	if text == "" {
		m.errorMessage = "Clipboard has no text"
		return
	}
	if _, err := m.session.AddText(text, m.cursor.X, m.cursor.Y); err != nil {
		m.report(err)
		return
	}
	m.clearMessages()
}

// openTextInput starts a text prompt. An empty target adds a new element at
// the cursor.
func (m *model) openTextInput(target editor.ElementID, text string) {
	m.mode = ModeTextInput
	m.textTarget = target
	m.textInputText = text
	m.textInputCursorPos = len([]rune(text))
	m.clearMessages()
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	runes := []rune(m.textInputText)
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.textInputText = ""
		m.clearMessages()
		return m, nil
	case tea.KeyEnter:
		var err error
		if m.textTarget == "" {
			_, err = m.session.AddText(m.textInputText, m.cursor.X, m.cursor.Y)
		} else {
			err = m.session.EditText(m.textTarget, m.textInputText)
		}
		if err != nil {
			m.report(err)
			return m, nil
		}
		m.mode = ModeNormal
		m.textInputText = ""
		m.clearMessages()
		return m, nil
	case tea.KeyLeft:
		if m.textInputCursorPos > 0 {
			m.textInputCursorPos--
		}
	case tea.KeyRight:
		if m.textInputCursorPos < len(runes) {
			m.textInputCursorPos++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		m.textInputCursorPos = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.textInputCursorPos = len(runes)
	case tea.KeyBackspace:
		if m.textInputCursorPos > 0 {
			runes = append(runes[:m.textInputCursorPos-1], runes[m.textInputCursorPos:]...)
			m.textInputCursorPos--
			m.textInputText = string(runes)
		}
	case tea.KeyDelete:
		if m.textInputCursorPos < len(runes) {
			runes = append(runes[:m.textInputCursorPos], runes[m.textInputCursorPos+1:]...)
			m.textInputText = string(runes)
		}
	case tea.KeyCtrlV:
		if raw, err := readClipboardText(); err == nil {
			m.insertText([]rune(pastedText(raw)))
		}
	case tea.KeySpace:
		m.insertText([]rune{' '})
	case tea.KeyRunes:
		m.insertText(msg.Runes)
	}
	return m, nil
}

func (m *model) insertText(in []rune) {
	runes := []rune(m.textInputText)
	if len(runes)+len(in) > maxTextLength {
		m.errorMessage = fmt.Sprintf("Text is limited to %d characters", maxTextLength)
		return
	}
	pos := m.textInputCursorPos
	if pos > len(runes) {
		pos = len(runes)
	}
	out := make([]rune, 0, len(runes)+len(in))
	out = append(out, runes[:pos]...)
	out = append(out, in...)
	out = append(out, runes[pos:]...)
	m.textInputText = string(out)
	m.textInputCursorPos = pos + len(in)
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		ext := ".png"
		if m.fileOp == FileOpExportPDF {
			ext = ".pdf"
		}
		path, err := m.config.GetSavePath(withExtension(m.filename, ext))
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error creating save directory: %s", err.Error())
			return m, nil
		}
		if m.config.Confirmations {
			if _, err := os.Stat(path); err == nil {
				m.mode = ModeConfirm
				m.confirmAction = ConfirmOverwriteFile
				m.filename = path
				return m, nil
			}
		}
		m.exportTo(path)
		if m.errorMessage != "" {
			return m, nil
		}
		m.mode = ModeNormal
		m.filename = ""
		return m, nil
	case tea.KeyBackspace:
		if runes := []rune(m.filename); len(runes) > 0 {
			m.filename = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m *model) handleTemplateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.catalog.All()
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
	case "k", "up":
		if m.templateIndex > 0 {
			m.templateIndex--
		}
	case "j", "down":
		if m.templateIndex < len(all)-1 {
			m.templateIndex++
		}
	case "enter":
		if m.templateIndex < 0 || m.templateIndex >= len(all) {
			return m, nil
		}
		id := all[m.templateIndex].ID
		if m.config.Confirmations && m.session.History().CanUndo() {
			m.pendingTemplate = id
			m.mode = ModeConfirm
			m.confirmAction = ConfirmTemplate
			return m, nil
		}
		m.applyTemplate(id)
		m.mode = ModeNormal
	}
	return m, nil
}

// applyTemplate starts over on the template's canvas with placeholder
// captions.
func (m *model) applyTemplate(id string) {
	tmpl, err := m.catalog.Use(id)
	if err != nil {
		m.report(err)
		return
	}
	w, h, err := tmpl.CanvasSize(m.config.CanvasWidth)
	if err != nil {
		m.report(err)
		return
	}
	if err := m.session.StartOver(w, h); err != nil {
		m.report(err)
		return
	}
	if err := placeCaptions(m.session, "TOP TEXT", "BOTTOM TEXT"); err != nil {
		m.report(err)
		return
	}
	m.session.Document().ClearSelection()
	m.centerCursor()
	log.Printf("template %s applied (%dx%d)", tmpl.ID, w, h)
	m.clearMessages()
	m.successMessage = fmt.Sprintf("%s (%s)", tmpl.Name, tmpl.AspectRatio)
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmReset:
			m.reset()
		case ConfirmTemplate:
			m.applyTemplate(m.pendingTemplate)
			m.pendingTemplate = ""
		case ConfirmOverwriteFile:
			m.exportTo(m.filename)
			if m.errorMessage != "" {
				m.mode = ModeFileInput
				return m, nil
			}
			m.filename = ""
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		switch m.confirmAction {
		case ConfirmOverwriteFile:
			m.mode = ModeFileInput
		case ConfirmTemplate:
			m.pendingTemplate = ""
			m.mode = ModeTemplates
		default:
			m.mode = ModeNormal
		}
	}
	return m, nil
}

func (m *model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || m.mode != ModeNormal {
		return m, nil
	}
	p, inside := m.viewport().toCanvas(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if m.mouseDown {
			m.pointerMove(p, inside)
			return m, nil
		}
		if !inside {
			return m, nil
		}
		m.pointerDown(cell{X: msg.X, Y: msg.Y}, p)
	case tea.MouseMotion:
		if m.mouseDown {
			m.pointerMove(p, inside)
		}
	case tea.MouseRelease:
		if !m.mouseDown {
			return m, nil
		}
		m.mouseDown = false
		committed, err := m.session.PointerUp()
		if err != nil {
			m.report(err)
		} else if committed {
			log.Printf("drag committed")
		}
	case tea.MouseWheelUp:
		if _, ok := m.session.Selected(); ok {
			m.report(m.session.AdjustFontSize(wheelFontStep))
		}
	case tea.MouseWheelDown:
		if _, ok := m.session.Selected(); ok {
			m.report(m.session.AdjustFontSize(-wheelFontStep))
		}
	}
	return m, nil
}

// pointerDown starts a drag, or opens the text prompt when it is the second
// press on the same cell within doubleClickDelay.
func (m *model) pointerDown(c cell, p editor.Point) {
	now := m.now()
	if c == m.lastClick && now.Sub(m.lastClickAt) <= doubleClickDelay {
		m.lastClick = cell{X: -1, Y: -1}
		if el, ok := m.session.TextTarget(p); ok {
			m.openTextInput(el.ID, el.Text)
		}
		return
	}
	m.lastClick = c
	m.lastClickAt = now
	m.cursor = p
	m.mouseDown = true
	m.session.PointerDown(p)
	m.clearMessages()
}

// pointerMove follows the drag. Leaving the preview ends the drag where the
// element was last placed.
func (m *model) pointerMove(p editor.Point, inside bool) {
	if inside {
		m.session.PointerMove(p)
		return
	}
	m.mouseDown = false
	committed, err := m.session.PointerLeave()
	if err != nil {
		m.report(err)
	} else if committed {
		log.Printf("drag committed on leave")
	}
}
