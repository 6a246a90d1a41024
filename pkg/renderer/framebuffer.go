package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Framebuffer is an 8-bit RGB image. Row 0 is the visual top.
//
// Concurrent SetPixel calls are safe as long as they touch disjoint pixels.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB triples, row-major from the top row
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// QuantizeColor converts an averaged linear color to 8-bit sRGB-ish bytes:
// gamma 2 (square root), clamp to [0,1], scale by 255.999 and truncate.
func QuantizeColor(c core.Vec3) (r, g, b uint8) {
	c = c.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return quantizeChannel(c.X), quantizeChannel(c.Y), quantizeChannel(c.Z)
}

func quantizeChannel(v float32) uint8 {
	// NaN fails both clamp comparisons
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(255.999 * v)
}

// SetPixel stores the averaged linear color c at (x, y), where y counts rows
// from the bottom of the image.
func (fb *Framebuffer) SetPixel(x, y int, c core.Vec3) {
	r, g, b := QuantizeColor(c)
	fb.SetRGB(x, fb.Height-1-y, r, g, b)
}

// SetRGB stores raw bytes at (x, row) with row 0 at the top
func (fb *Framebuffer) SetRGB(x, row int, r, g, b uint8) {
	i := fb.offset(x, row)
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
}

// RGBAt returns the raw bytes at (x, row) with row 0 at the top
func (fb *Framebuffer) RGBAt(x, row int) (r, g, b uint8) {
	i := fb.offset(x, row)
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// ColorAt returns the stored pixel at (x, y) as a color in [0,1], with y
// counting rows from the bottom like SetPixel.
func (fb *Framebuffer) ColorAt(x, y int) core.Vec3 {
	r, g, b := fb.RGBAt(x, fb.Height-1-y)
	return core.NewVec3(float32(r), float32(g), float32(b)).Divide(255)
}

func (fb *Framebuffer) offset(x, row int) int {
	return (row*fb.Width + x) * 3
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := fb.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FramebufferFromImage copies any decoded image into a new framebuffer
func FramebufferFromImage(img image.Image) *Framebuffer {
	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			fb.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, c.R, c.G, c.B)
		}
	}
	return fb
}
