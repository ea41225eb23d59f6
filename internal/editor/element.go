package editor

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

type ElementID string

type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

const (
	DefaultFontSize    = 32
	DefaultFillColor   = "#ffffff"
	DefaultStrokeColor = "#000000"
	DefaultStrokeWidth = 2
	DefaultFontFamily  = FamilySans

	MinFontSize    = 8
	MaxFontSize    = 200
	MaxStrokeWidth = 12
)

type Point struct {
	X, Y float64
}

// TextElement is a single piece of text anchored at its center.
type TextElement struct {
	ID             ElementID  `json:"id"`
	Text           string     `json:"text"`
	X              float64    `json:"x"`
	Y              float64    `json:"y"`
	FontSize       int        `json:"font_size"`
	FontWeight     FontWeight `json:"font_weight"`
	FontFamily     string     `json:"font_family"`
	FillColor      string     `json:"fill_color"`
	StrokeColor    string     `json:"stroke_color"`
	StrokeWidth    int        `json:"stroke_width"`
	ShadowEnabled  bool       `json:"shadow"`
	OutlineEnabled bool       `json:"outline"`
}

func (e TextElement) Anchor() Point {
	return Point{X: e.X, Y: e.Y}
}

func newTextElement(id ElementID, text string, x, y float64) TextElement {
	return TextElement{
		ID:             id,
		Text:           text,
		X:              x,
		Y:              y,
		FontSize:       DefaultFontSize,
		FontWeight:     WeightBold,
		FontFamily:     DefaultFontFamily,
		FillColor:      DefaultFillColor,
		StrokeColor:    DefaultStrokeColor,
		StrokeWidth:    DefaultStrokeWidth,
		ShadowEnabled:  true,
		OutlineEnabled: true,
	}
}

// StylePatch carries a partial style update. Nil fields are left alone.
type StylePatch struct {
	FontSize       *int
	FontWeight     *FontWeight
	FontFamily     *string
	FillColor      *string
	StrokeColor    *string
	StrokeWidth    *int
	ShadowEnabled  *bool
	OutlineEnabled *bool
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}

func (p StylePatch) validate() error {
	if p.FontSize != nil && (*p.FontSize < MinFontSize || *p.FontSize > MaxFontSize) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidFontSize, *p.FontSize, MinFontSize, MaxFontSize)
	}
	if p.StrokeWidth != nil && (*p.StrokeWidth < 0 || *p.StrokeWidth > MaxStrokeWidth) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidStroke, *p.StrokeWidth, MaxStrokeWidth)
	}
	if p.FontWeight != nil && *p.FontWeight != WeightNormal && *p.FontWeight != WeightBold {
		return fmt.Errorf("unknown font weight %q", *p.FontWeight)
	}
	if p.FillColor != nil {
		if err := ValidateColor(*p.FillColor); err != nil {
			return err
		}
	}
	if p.StrokeColor != nil {
		if err := ValidateColor(*p.StrokeColor); err != nil {
			return err
		}
	}
	return nil
}

func (p StylePatch) apply(el *TextElement) {
	if p.FontSize != nil {
		el.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		el.FontWeight = *p.FontWeight
	}
	if p.FontFamily != nil {
		el.FontFamily = *p.FontFamily
	}
	if p.FillColor != nil {
		el.FillColor = *p.FillColor
	}
	if p.StrokeColor != nil {
		el.StrokeColor = *p.StrokeColor
	}
	if p.StrokeWidth != nil {
		el.StrokeWidth = *p.StrokeWidth
	}
	if p.ShadowEnabled != nil {
		el.ShadowEnabled = *p.ShadowEnabled
	}
	if p.OutlineEnabled != nil {
		el.OutlineEnabled = *p.OutlineEnabled
	}
}

// ValidateColor accepts #rgb and #rrggbb hex colors.
func ValidateColor(hex string) error {
	if _, err := ParseColor(hex); err != nil {
		return err
	}
	return nil
}

func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q", ErrInvalidColor, hex)
	}
	return c, nil
}
