// Package texture generates, loads, and exports the tile atlas sampled by
// cuboid faces.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultCellSize is the edge length of one atlas cell in pixels.
const DefaultCellSize = 64

// borderPx is the width of the dark frame drawn around each generated cell.
const borderPx = 3

// cellTints cycles through distinguishable colors for generated cells.
var cellTints = []color.RGBA{
	{R: 0x8c, G: 0x7b, B: 0x6a, A: 0xff}, // stone
	{R: 0x5e, G: 0x81, B: 0xac, A: 0xff}, // slate
	{R: 0x7a, G: 0x9e, B: 0x5a, A: 0xff}, // moss
	{R: 0xb0, G: 0x6a, B: 0x4c, A: 0xff}, // clay
	{R: 0x9a, G: 0x7e, B: 0xb8, A: 0xff}, // amethyst
	{R: 0xc8, G: 0xb0, B: 0x5a, A: 0xff}, // ochre
}

// Layout is the atlas grid and cell resolution.
type Layout struct {
	Cols     int
	Rows     int
	CellSize int
}

func (l Layout) normalized() Layout {
	if l.Cols <= 0 {
		l.Cols = 1
	}
	if l.Rows <= 0 {
		l.Rows = 1
	}
	if l.CellSize <= 0 {
		l.CellSize = DefaultCellSize
	}
	return l
}

// Size returns the atlas size in pixels.
func (l Layout) Size() (width, height int) {
	l = l.normalized()
	return l.Cols * l.CellSize, l.Rows * l.CellSize
}

// CellBounds returns the pixel rectangle of cell (col, row). Row 0 is the
// top of the image, which is v = 0 once uploaded.
func (l Layout) CellBounds(col, row int) image.Rectangle {
	l = l.normalized()
	x0 := col * l.CellSize
	y0 := row * l.CellSize
	return image.Rect(x0, y0, x0+l.CellSize, y0+l.CellSize)
}

// Generate draws a procedural atlas. Every cell gets its own tint, a frame,
// an orientation bar along its top edge, and a "col,row" label, so tiling
// and face orientation can be checked by eye.
func Generate(l Layout) *image.RGBA {
	l = l.normalized()
	w, h := l.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			drawCell(img, l, col, row)
		}
	}
	return img
}

func drawCell(img *image.RGBA, l Layout, col, row int) {
	r := l.CellBounds(col, row)
	tint := cellTints[(row*l.Cols+col)%len(cellTints)]
	frame := shade(tint, 0.45)

	draw.Draw(img, r, image.NewUniform(frame), image.Point{}, draw.Src)
	inner := r.Inset(borderPx)
	draw.Draw(img, inner, image.NewUniform(tint), image.Point{}, draw.Src)

	bar := image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+max(2, l.CellSize/10))
	draw.Draw(img, bar, image.NewUniform(shade(tint, 1.4)), image.Point{}, draw.Src)

	label := fmt.Sprintf("%d,%d", col, row)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}),
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(label).Ceil()
	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()+basicfont.Face7x13.Ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(label)
}

func shade(c color.RGBA, k float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * k
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Load decodes an atlas image (PNG or TGA) and resamples it to the layout's
// pixel size.
func Load(path string, l Layout) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("decoding atlas %s: %w", path, err)
	}
	return Fit(src, l), nil
}

// decode picks the decoder by extension. The tga package registers an empty
// magic string, so image.Decode cannot sniff PNG once it is linked in.
func decode(r io.Reader, path string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".tga":
		return tga.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}

// Fit converts src to RGBA at the layout's pixel size, scaling if needed.
func Fit(src image.Image, l Layout) *image.RGBA {
	w, h := l.Size()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// SaveWebP writes img to path as WebP, creating parent directories.
func SaveWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
