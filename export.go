package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jung-kurt/gofpdf"

	"memegen/internal/editor"
)

// exportFile writes the session's document to path, as PDF when the name
// ends in .pdf and as PNG otherwise.
func exportFile(s *editor.Session, path string) error {
	data, err := s.Export()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	doc := s.Document()
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return writePDF(path, data, doc.Width(), doc.Height())
	}
	return writePNG(path, data)
}

func writePNG(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writePDF places the PNG on a single page the size of the canvas, one
// point per pixel.
func writePDF(path string, data []byte, width, height int) error {
	w, h := float64(width), float64(height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("meme", opts, bytes.NewReader(data))
	pdf.ImageOptions("meme", 0, 0, w, h, false, opts, 0, "")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// withExtension appends ext unless filename already ends in it.
func withExtension(filename, ext string) string {
	if strings.HasSuffix(strings.ToLower(filename), ext) {
		return filename
	}
	return filename + ext
}

func (m *model) exportTo(path string) {
	if err := exportFile(m.session, path); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting: %s", err.Error())
		return
	}
	absPath, _ := filepath.Abs(path)
	log.Printf("exported %s", absPath)
	m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	m.errorMessage = ""
}

// shareImage saves already-encoded PNG bytes and puts the file path on the
// clipboard.
func shareImage(data []byte, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = os.TempDir()
		}
		path := filepath.Join(dir, fmt.Sprintf("meme-%s.png", now.Format("20060102-150405")))
		if err := writePNG(path, data); err != nil {
			return shareDoneMsg{err: err}
		}
		if err := clipboard.WriteAll(path); err != nil {
			return shareDoneMsg{path: path, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return shareDoneMsg{path: path}
	}
}
