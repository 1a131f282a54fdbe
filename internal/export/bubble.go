// Package export writes static snapshots of the bubble view as SVG or PNG.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/protscope/core/internal/views"
)

const (
	canvasWidth = 960
	padding     = 24.0
	gap         = 10.0
	minRadius   = 14.0
	maxRadius   = 70.0
	headerH     = 48.0
)

var (
	colorBackdrop = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	colorLow      = color.RGBA{0xde, 0xeb, 0xf7, 0xff}
	colorHigh     = color.RGBA{0x08, 0x51, 0x9c, 0xff}
	colorStroke   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorText     = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

// Format infers "svg" or "png" from path, or validates an explicit format.
func Format(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	switch format {
	case "svg", "png":
		return format, nil
	case "":
		return "svg", nil
	default:
		return "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

type bubble struct {
	Label string
	Count int
	X, Y  float64
	R     float64
	Fill  color.RGBA
}

type layout struct {
	Bubbles []bubble
	Width   int
	Height  int
	Title   string
}

// buildLayout places bubbles left to right in shelves, in count order of
// first occurrence. Area grows with the count.
func buildLayout(v views.BubbleView, title string) layout {
	out := layout{Width: canvasWidth, Title: title}

	x, y := padding, headerH+padding
	rowH := 0.0
	for _, c := range v.Counts {
		r := radius(c.Count, v.Domain[1])
		if x+2*r > canvasWidth-padding && x > padding {
			x = padding
			y += rowH + gap
			rowH = 0
		}
		out.Bubbles = append(out.Bubbles, bubble{
			Label: c.Label,
			Count: c.Count,
			X:     x + r,
			Y:     y + r,
			R:     r,
			Fill:  shade(c.Count, v.Domain),
		})
		x += 2*r + gap
		rowH = math.Max(rowH, 2*r)
	}

	out.Height = int(math.Ceil(y + rowH + padding))
	return out
}

func radius(count, maxCount int) float64 {
	if maxCount <= 0 {
		return minRadius
	}
	return minRadius + (maxRadius-minRadius)*math.Sqrt(float64(count)/float64(maxCount))
}

func shade(count int, domain [2]int) color.RGBA {
	t := 1.0
	if span := domain[1] - domain[0]; span > 0 {
		t = float64(count-domain[0]) / float64(span)
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{mix(colorLow.R, colorHigh.R), mix(colorLow.G, colorHigh.G), mix(colorLow.B, colorHigh.B), 0xff}
}

// textColor keeps labels readable on dark fills.
func textColor(fill color.RGBA) color.RGBA {
	luma := 0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)
	if luma < 140 {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return colorText
}

// fit truncates label to what a bubble of radius r can hold at 7px a cell.
func fit(label string, r float64) string {
	cells := int(2*r*0.85) / 7
	if cells < 4 {
		return ""
	}
	return runewidth.Truncate(label, cells, "…")
}

// Bubble writes v to w in format ("svg" or "png").
func Bubble(w io.Writer, v views.BubbleView, format, title string) error {
	if v.Empty {
		return fmt.Errorf("nothing to export: no results")
	}

	l := buildLayout(v, title)
	switch format {
	case "svg":
		return renderSVG(w, l)
	case "png":
		return renderPNG(w, l)
	default:
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

func renderSVG(w io.Writer, l layout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Rect(0, 0, l.Width, l.Height, "fill:"+css(colorBackdrop))
	canvas.Text(int(padding), int(padding+8), l.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold", css(colorText)))

	for _, b := range l.Bubbles {
		canvas.Group()
		canvas.Title(fmt.Sprintf("%s: %d", b.Label, b.Count))
		canvas.Circle(int(b.X), int(b.Y), int(b.R),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", css(b.Fill), css(colorStroke)))
		if label := fit(b.Label, b.R); label != "" {
			canvas.Text(int(b.X), int(b.Y), label,
				fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(textColor(b.Fill))))
		}
		canvas.Text(int(b.X), int(b.Y)+14, fmt.Sprint(b.Count),
			fmt.Sprintf("fill:%s;font-size:10px;font-family:monospace;text-anchor:middle", css(textColor(b.Fill))))
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func renderPNG(w io.Writer, l layout) error {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, padding, padding+4, 0, 0.5)

	for _, b := range l.Bubbles {
		dc.SetColor(b.Fill)
		dc.DrawCircle(b.X, b.Y, b.R)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(b.X, b.Y, b.R)
		dc.Stroke()

		dc.SetColor(textColor(b.Fill))
		if label := fit(b.Label, b.R); label != "" {
			dc.DrawStringAnchored(label, b.X, b.Y, 0.5, 0.5)
		}
		dc.DrawStringAnchored(fmt.Sprint(b.Count), b.X, b.Y+14, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
