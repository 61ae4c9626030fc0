package canvas

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

type faces struct {
	body    font.Face
	heading font.Face
	title   font.Face
	mono    font.Face
	small   font.Face
}

func loadFaces(fontPath string, size float64) (faces, error) {
	body := goregular.TTF
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return faces{}, fmt.Errorf("read font file: %w", err)
		}
		body = data
	}
	regular, err := truetype.Parse(body)
	if err != nil {
		return faces{}, fmt.Errorf("parse font %q: %w", fontPath, err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parse bold font: %w", err)
	}
	mono, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parse mono font: %w", err)
	}
	return faces{
		body:    newFace(regular, size),
		heading: newFace(bold, size*1.3),
		title:   newFace(bold, size*0.8),
		mono:    newFace(mono, size*0.85),
		small:   newFace(regular, size*0.65),
	}, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// faceMeasurer measures strings in pixels for surface.Wrap.
type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) Measure(text string) float64 {
	return fixedToFloat(font.MeasureString(m.face, text))
}

func lineHeight(face font.Face) float64 {
	return fixedToFloat(face.Metrics().Height)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
