package imagepkg

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
)

// Canvas is the RGBA output raster. Every drawing call mutates it in place.
type Canvas struct {
	im *image.RGBA
	dc *gg.Context
}

// NewCanvas copies the background into a fresh RGBA raster anchored at (0, 0).
func NewCanvas(background image.Image) *Canvas {
	b := background.Bounds()
	im := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(im, im.Bounds(), background, b.Min, draw.Src)
	return &Canvas{im: im, dc: gg.NewContextForRGBA(im)}
}

func (c *Canvas) Image() *image.RGBA { return c.im }

func (c *Canvas) Width() int  { return c.im.Bounds().Dx() }
func (c *Canvas) Height() int { return c.im.Bounds().Dy() }

// paste alpha-composites src with its top-left corner at (x, y).
func (c *Canvas) paste(src image.Image, x, y int) {
	sb := src.Bounds()
	r := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	draw.Draw(c.im, r, src, sb.Min, draw.Over)
}
