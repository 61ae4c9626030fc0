package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface"
)

// ErrNoFrame is returned when encoding before anything was rendered.
var ErrNoFrame = errors.New("no frame rendered")

const (
	margin      = 48.0
	blockGap    = 18.0
	codePadding = 14.0
	barHeight   = 8.0
)

var (
	background = color.RGBA{R: 0x1b, G: 0x1e, B: 0x26, A: 0xff}
	foreground = color.RGBA{R: 0xec, G: 0xef, B: 0xf4, A: 0xff}
	muted      = color.RGBA{R: 0x81, G: 0x8a, B: 0x9a, A: 0xff}
	accent     = color.RGBA{R: 0x88, G: 0xc0, B: 0xd0, A: 0xff}
	codeFill   = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	codeInk    = color.RGBA{R: 0xa3, G: 0xbe, B: 0x8c, A: 0xff}
	diagramInk = color.RGBA{R: 0xb4, G: 0x8e, B: 0xad, A: 0xff}
)

// Options configures a canvas Surface.
type Options struct {
	Width    int
	Height   int
	FontPath string
	FontSize float64
	Diagrams surface.DiagramRenderer
}

// Surface renders frames to an in-memory image.
type Surface struct {
	opts  Options
	faces faces

	mu   sync.Mutex
	last *gg.Context
}

// New loads fonts and returns a surface. An empty FontPath uses the bundled
// Go font.
func New(opts Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 22
	}
	if opts.Diagrams == nil {
		opts.Diagrams = surface.SourceDiagrams{}
	}
	loaded, err := loadFaces(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	return &Surface{opts: opts, faces: loaded}, nil
}

// Render paints frame and keeps it for EncodePNG.
func (s *Surface) Render(frame playback.Frame) error {
	dc := gg.NewContext(s.opts.Width, s.opts.Height)
	dc.SetColor(background)
	dc.Clear()

	p := painter{dc: dc, faces: s.faces, diagrams: s.opts.Diagrams, width: float64(s.opts.Width), height: float64(s.opts.Height)}
	p.paint(frame)

	s.mu.Lock()
	s.last = dc
	s.mu.Unlock()
	return nil
}

// Image returns the last rendered frame.
func (s *Surface) Image() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, ErrNoFrame
	}
	return s.last.Image(), nil
}

// EncodePNG writes the last rendered frame as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return ErrNoFrame
	}
	if err := s.last.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes the last rendered frame to path.
func (s *Surface) WritePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.EncodePNG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type painter struct {
	dc       *gg.Context
	faces    faces
	diagrams surface.DiagramRenderer
	width    float64
	height   float64
	y        float64
}

func (p *painter) paint(frame playback.Frame) {
	p.y = margin
	if frame.Title != "" {
		p.text(strings.ToUpper(frame.Title), p.faces.title, muted, 1, margin)
	}
	if frame.Empty {
		p.text("This lesson has no sections.", p.faces.body, muted, 1, margin)
		return
	}
	p.text(frame.Heading, p.faces.heading, foreground, 1, margin)
	p.y += blockGap / 2

	for _, block := range frame.Blocks {
		if p.y > p.height-margin {
			break
		}
		p.block(block)
	}
	p.progress(frame)
}

func (p *painter) block(out reveal.Output) {
	start := p.y
	switch {
	case out.Code != nil:
		p.code(out)
	case out.Diagram != nil:
		p.diagram(out)
	case len(out.Items) > 0:
		for _, item := range out.Items {
			p.wrapped("•  "+item.Text, p.faces.body, foreground, item.Opacity, margin+item.OffsetX)
		}
	default:
		if out.Opacity <= 0 || (out.Text == "" && !out.Cursor) {
			return
		}
		body := out.Text
		switch {
		case out.Cursor:
			body += "▌"
		case out.Marker:
			body += " ✎"
		}
		p.wrapped(body, p.faces.body, foreground, out.Opacity, margin+out.OffsetX)
	}
	if p.y > start {
		p.y += blockGap
	}
}

func (p *painter) code(out reveal.Output) {
	if out.Progress <= 0 {
		return
	}
	lh := lineHeight(p.faces.mono)
	rows := len(out.Code.Lines)
	top := p.y
	boxHeight := float64(rows)*lh + 2*codePadding
	if out.Code.LabelVisible {
		boxHeight += lh
	}
	p.dc.SetColor(codeFill)
	p.dc.DrawRoundedRectangle(margin, top, p.width-2*margin, boxHeight, 8)
	p.dc.Fill()
	p.dc.SetColor(muted)
	p.dc.SetLineWidth(1)
	p.dc.DrawRoundedRectangle(margin, top, p.width-2*margin, boxHeight, 8)
	p.dc.Stroke()

	p.y = top + codePadding
	if out.Code.LabelVisible {
		p.text(out.Code.Language, p.faces.small, accent, 1, margin+codePadding)
	}
	for _, line := range out.Code.Lines {
		body := strings.ReplaceAll(line.Text, "\t", "    ")
		if line.Cursor {
			body += "▌"
		}
		p.text(body, p.faces.mono, codeInk, line.Opacity, margin+codePadding)
	}
	p.y = top + boxHeight
}

func (p *painter) diagram(out reveal.Output) {
	if !out.Diagram.Visible {
		return
	}
	lines, err := p.diagrams.RenderDiagram(out.Diagram.Source)
	if err != nil {
		p.text("diagram unavailable: "+err.Error(), p.faces.small, muted, 1, margin)
		return
	}
	lh := lineHeight(p.faces.mono)
	top := p.y
	boxHeight := float64(len(lines))*lh + 2*codePadding
	p.dc.SetColor(diagramInk)
	p.dc.SetLineWidth(1.5)
	p.dc.SetDash(6, 4)
	p.dc.DrawRectangle(margin, top, p.width-2*margin, boxHeight)
	p.dc.Stroke()
	p.dc.SetDash()
	p.y = top + codePadding
	for _, line := range lines {
		p.text(line, p.faces.mono, diagramInk, 1, margin+codePadding)
	}
	p.y = top + boxHeight
}

func (p *painter) progress(frame playback.Frame) {
	top := p.height - margin/2 - barHeight
	track := p.width - 2*margin
	p.dc.SetColor(codeFill)
	p.dc.DrawRectangle(margin, top, track, barHeight)
	p.dc.Fill()
	p.dc.SetColor(accent)
	p.dc.DrawRectangle(margin, top, track*float64(frame.PercentComplete)/100, barHeight)
	p.dc.Fill()

	p.dc.SetFontFace(p.faces.small)
	p.dc.SetColor(muted)
	label := fmt.Sprintf("%d / %d  ·  %d%%", frame.SectionIndex+1, frame.SectionCount, frame.PercentComplete)
	p.dc.DrawStringAnchored(label, p.width-margin, top-6, 1, 0)
}

// wrapped draws text wrapped to the content width starting at x.
func (p *painter) wrapped(value string, face font.Face, ink color.RGBA, opacity, x float64) {
	for _, line := range surface.Wrap(value, p.width-2*margin, faceMeasurer{face: face}) {
		p.text(line, face, ink, opacity, x)
	}
}

// text draws one line with its top at p.y and advances p.y.
func (p *painter) text(value string, face font.Face, ink color.RGBA, opacity, x float64) {
	lh := lineHeight(face)
	if opacity > 0 && value != "" {
		p.dc.SetFontFace(face)
		p.dc.SetColor(withAlpha(ink, opacity))
		p.dc.DrawString(value, x, p.y+fixedToFloat(face.Metrics().Ascent))
	}
	p.y += lh
}

func withAlpha(c color.RGBA, opacity float64) color.NRGBA {
	opacity = reveal.Clamp(opacity)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}
