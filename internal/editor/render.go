package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const (
	DefaultBackground = "#1a1a2e"
	SelectionColor    = "#00f5ff"
	SelectionPadding  = 10.0
	shadowOffset      = 2.0
)

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Background string
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Background: DefaultBackground,
	}
}

// Renderer paints documents onto a raster. It also measures text for hit
// testing, using the faces it paints with.
type Renderer struct {
	background string
	fonts      *fontCache
}

func NewRenderer(opts RenderOptions) (*Renderer, error) {
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}
	if err := ValidateColor(opts.Background); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return &Renderer{
		background: opts.Background,
		fonts:      newFontCache(),
	}, nil
}

func (r *Renderer) face(el TextElement) font.Face {
	face, err := r.fonts.face(el.FontFamily, el.FontWeight, el.FontSize)
	if err != nil {
		// embedded fonts always parse
		panic(err)
	}
	return face
}

// Measure returns the rendered width of the element's text and its
// nominal height, which is the font size.
func (r *Renderer) Measure(el TextElement) (w, h float64) {
	if el.FontSize <= 0 {
		return 0, 0
	}
	advance := font.MeasureString(r.face(el), el.Text)
	return float64(advance >> 6), float64(el.FontSize)
}

// Render paints doc and, when showSelection is set, the dashed box around
// the selected element.
func (r *Renderer) Render(doc *Document, showSelection bool) image.Image {
	dc := gg.NewContext(doc.Width(), doc.Height())
	bg, _ := ParseColor(r.background)
	dc.SetColor(bg)
	dc.Clear()

	for _, el := range doc.elements {
		r.drawElement(dc, el)
	}

	if showSelection {
		if id, ok := doc.Selected(); ok {
			if el, ok := doc.Element(id); ok {
				r.drawSelection(dc, el)
			}
		}
	}

	return dc.Image()
}

func (r *Renderer) drawElement(dc *gg.Context, el TextElement) {
	if el.Text == "" || el.FontSize <= 0 {
		return
	}
	dc.SetFontFace(r.face(el))

	if el.ShadowEnabled {
		dc.SetRGBA(0, 0, 0, 0.5)
		dc.DrawStringAnchored(el.Text, el.X+shadowOffset, el.Y+shadowOffset, 0.5, 0.5)
	}

	if el.OutlineEnabled && el.StrokeWidth > 0 {
		stroke, err := ParseColor(el.StrokeColor)
		if err == nil {
			dc.SetColor(stroke)
			n := el.StrokeWidth
			for dy := -n; dy <= n; dy++ {
				for dx := -n; dx <= n; dx++ {
					if dx*dx+dy*dy > n*n {
						continue
					}
					dc.DrawStringAnchored(el.Text, el.X+float64(dx), el.Y+float64(dy), 0.5, 0.5)
				}
			}
		}
	}

	fill, err := ParseColor(el.FillColor)
	if err != nil {
		fill, _ = ParseColor(DefaultFillColor)
	}
	dc.SetColor(fill)
	dc.DrawStringAnchored(el.Text, el.X, el.Y, 0.5, 0.5)
}

func (r *Renderer) drawSelection(dc *gg.Context, el TextElement) {
	w, h := r.Measure(el)
	accent, _ := ParseColor(SelectionColor)
	dc.SetColor(accent)
	dc.SetLineWidth(2)
	dc.SetDash(6, 4)
	dc.DrawRectangle(
		el.X-w/2-SelectionPadding,
		el.Y-h/2-SelectionPadding,
		w+2*SelectionPadding,
		h+2*SelectionPadding,
	)
	dc.Stroke()
	dc.SetDash()
}

// RenderPNG writes the export rendering of doc (no selection box) as PNG.
func (r *Renderer) RenderPNG(doc *Document, w io.Writer) error {
	if err := png.Encode(w, r.Render(doc, false)); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// RenderToImage returns the export rendering of doc as PNG bytes.
func (r *Renderer) RenderToImage(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderPNG(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
