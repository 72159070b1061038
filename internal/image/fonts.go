package imagepkg

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSet holds the regular and bold typefaces and caches faces per size.
// Faces are not safe for concurrent drawing: each composition works on its own session.
type FontSet struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// DefaultFontSet uses the embedded Go fonts.
func DefaultFontSet() (*FontSet, error) {
	return LoadFontSet("", "")
}

// LoadFontSet parses TTF files; an empty path falls back to the embedded Go font of that weight.
func LoadFontSet(regularPath, boldPath string) (*FontSet, error) {
	regular, err := parseFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := parseFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &FontSet{regular: regular, bold: bold, faces: map[faceKey]font.Face{}}, nil
}

func parseFont(path string, fallback []byte) (*truetype.Font, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return f, nil
}

// session returns a FontSet sharing the parsed fonts with an empty face cache.
func (fs *FontSet) session() *FontSet {
	return &FontSet{regular: fs.regular, bold: fs.bold, faces: map[faceKey]font.Face{}}
}

// Regular returns the regular face at size points (72 DPI, so points are pixels).
func (fs *FontSet) Regular(size float64) font.Face { return fs.face(false, size) }

// Bold returns the bold face at size points.
func (fs *FontSet) Bold(size float64) font.Face { return fs.face(true, size) }

func (fs *FontSet) face(bold bool, size float64) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	key := faceKey{bold: bold, size: size}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	ttf := fs.regular
	if bold {
		ttf = fs.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	fs.faces[key] = f
	return f
}
