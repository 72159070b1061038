package imagepkg

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// PasteFitBox scales the overlay uniformly to fit the box, centers it in the box and
// alpha-composites it. It returns the area covered by the overlay.
func PasteFitBox(c *Canvas, overlay image.Image, x, y, w, h int) image.Rectangle {
	b := overlay.Bounds()
	ratio := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	nw := atLeastOne(int(float64(b.Dx()) * ratio))
	nh := atLeastOne(int(float64(b.Dy()) * ratio))
	dx := x + (w-nw)/2
	dy := y + (h-nh)/2
	c.paste(imaging.Resize(overlay, nw, nh, imaging.Lanczos), dx, dy)
	return image.Rect(dx, dy, dx+nw, dy+nh)
}

// PasteFixedWidth scales the overlay to width, keeping its aspect ratio, anchored top-left at (x, y).
func PasteFixedWidth(c *Canvas, overlay image.Image, x, y, width int) image.Rectangle {
	b := overlay.Bounds()
	nh := atLeastOne(b.Dy() * width / b.Dx())
	c.paste(imaging.Resize(overlay, width, nh, imaging.Lanczos), x, y)
	return image.Rect(x, y, x+width, y+nh)
}

// PasteFixedHeight scales the overlay to height, keeping its aspect ratio, anchored top-left at (x, y).
func PasteFixedHeight(c *Canvas, overlay image.Image, x, y, height int) image.Rectangle {
	b := overlay.Bounds()
	nw := atLeastOne(b.Dx() * height / b.Dy())
	c.paste(imaging.Resize(overlay, nw, height, imaging.Lanczos), x, y)
	return image.Rect(x, y, x+nw, y+height)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
