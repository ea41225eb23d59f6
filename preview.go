package main

import (
	"bytes"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"memegen/internal/editor"
)

// viewport places the canvas inside the terminal. Each cell shows two
// vertically stacked canvas samples using the upper half block.
type viewport struct {
	offsetX int
	cols    int
	rows    int
	scale   float64
}

func fitViewport(docW, docH, areaCols, areaRows int) viewport {
	if docW <= 0 || docH <= 0 || areaCols <= 0 || areaRows <= 0 {
		return viewport{}
	}
	scale := math.Min(float64(areaCols)/float64(docW), float64(areaRows*2)/float64(docH))
	cols := int(math.Round(float64(docW) * scale))
	rows := int(math.Round(float64(docH) * scale / 2))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols > areaCols {
		cols = areaCols
	}
	if rows > areaRows {
		rows = areaRows
	}
	return viewport{
		offsetX: (areaCols - cols) / 2,
		cols:    cols,
		rows:    rows,
		scale:   scale,
	}
}

// toCanvas maps the centre of a terminal cell to canvas pixels. It reports
// false for cells outside the preview.
func (v viewport) toCanvas(x, y int) (editor.Point, bool) {
	if v.scale <= 0 {
		return editor.Point{}, false
	}
	cx := x - v.offsetX
	if cx < 0 || cx >= v.cols || y < 0 || y >= v.rows {
		return editor.Point{}, false
	}
	return editor.Point{
		X: (float64(cx) + 0.5) / v.scale,
		Y: (float64(y)*2 + 1) / v.scale,
	}, true
}

type frameKey struct {
	snapshot string
	selected editor.ElementID
	view     viewport
}

// frameCache holds the last drawn preview so redraws without a document
// change skip rendering.
type frameCache struct {
	key   frameKey
	frame string
}

func (m model) renderPreview() string {
	v := m.viewport()
	doc := m.session.Document()
	snap, err := doc.Snapshot()
	if err != nil {
		return "preview unavailable: " + err.Error()
	}
	selected, _ := doc.Selected()
	key := frameKey{snapshot: string(snap), selected: selected, view: v}
	if m.frame != nil && m.frame.frame != "" && m.frame.key == key {
		return m.frame.frame
	}

	out := drawHalfBlocks(m.session.Render(), v)
	if m.frame != nil {
		m.frame.key = key
		m.frame.frame = out
	}
	return out
}

func drawHalfBlocks(src image.Image, v viewport) string {
	if v.cols == 0 || v.rows == 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, v.cols, v.rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	styles := map[[2]string]lipgloss.Style{}
	pad := strings.Repeat(" ", v.offsetX)
	var b bytes.Buffer
	for row := 0; row < v.rows; row++ {
		b.WriteString(pad)
		for col := 0; col < v.cols; col++ {
			top := colorful.LinearRgb(0, 0, 0)
			bottom := top
			if c, ok := colorful.MakeColor(dst.At(col, row*2)); ok {
				top = c
			}
			if c, ok := colorful.MakeColor(dst.At(col, row*2+1)); ok {
				bottom = c
			}
			pair := [2]string{top.Hex(), bottom.Hex()}
			style, ok := styles[pair]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(pair[0])).
					Background(lipgloss.Color(pair[1]))
				styles[pair] = style
			}
			b.WriteString(style.Render("▀"))
		}
		if row < v.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
