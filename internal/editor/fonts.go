package editor

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

const (
	FamilySans      = "sans"
	FamilyMono      = "mono"
	FamilySmallCaps = "smallcaps"
)

// Families lists the font families in cycling order.
var Families = []string{FamilySans, FamilyMono, FamilySmallCaps}

var familyTTF = map[string]map[FontWeight][]byte{
	FamilySans: {
		WeightNormal: goregular.TTF,
		WeightBold:   gobold.TTF,
	},
	FamilyMono: {
		WeightNormal: gomono.TTF,
		WeightBold:   gomonobold.TTF,
	},
	FamilySmallCaps: {
		WeightNormal: gosmallcaps.TTF,
		WeightBold:   gosmallcaps.TTF,
	},
}

// NextFamily returns the family after current in Families, wrapping around.
// Unknown families restart the cycle.
func NextFamily(current string) string {
	for i, f := range Families {
		if f == current {
			return Families[(i+1)%len(Families)]
		}
	}
	return Families[0]
}

type faceKey struct {
	family string
	weight FontWeight
	size   int
}

// fontCache parses each embedded TTF once and keeps one face per size.
type fontCache struct {
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

func newFontCache() *fontCache {
	return &fontCache{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (c *fontCache) face(family string, weight FontWeight, size int) (font.Face, error) {
	if _, ok := familyTTF[family]; !ok {
		family = FamilySans
	}
	if weight != WeightBold {
		weight = WeightNormal
	}
	key := faceKey{family: family, weight: weight, size: size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	fontKey := family + "/" + string(weight)
	ttf, ok := c.fonts[fontKey]
	if !ok {
		parsed, err := truetype.Parse(familyTTF[family][weight])
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %v", fontKey, err)
		}
		c.fonts[fontKey] = parsed
		ttf = parsed
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = face
	return face, nil
}
