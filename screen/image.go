package screen

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	cellPx    = 12 // size of a grid cell
	marginPx  = 2 * cellPx
	captionPx = 28
)

var captionFace font.Face

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	captionFace = truetype.NewFace(f, &truetype.Options{Size: 16})
}

// Image renders the glass as last shown, with the decoded value as a caption
// underneath.
func (d *Dev) Image() image.Image {
	return d.render().Image()
}

// EncodePNG writes the rendered glass as a PNG.
func (d *Dev) EncodePNG(w io.Writer) error {
	return d.render().EncodePNG(w)
}

// SavePNG writes the rendered glass as a PNG file.
func (d *Dev) SavePNG(path string) error {
	return d.render().SavePNG(path)
}

func (d *Dev) render() *gg.Context {
	shown := d.Patterns()
	digitPx := (gridCols + 1) * cellPx
	w := 2*marginPx + 4*digitPx
	h := 2*marginPx + gridRows*cellPx + captionPx
	dc := gg.NewContext(w, h)
	dc.SetColor(Background)
	dc.Clear()

	for i := range shown {
		for seg, pts := range layout {
			if shown[i]&seg != 0 {
				dc.SetColor(Lit)
			} else {
				dc.SetColor(Unlit)
			}
			for _, pt := range pts {
				c := cellCenter(i, pt)
				dc.DrawRectangle(float64(c.X-cellPx/2), float64(c.Y-cellPx/2), cellPx, cellPx)
				dc.Fill()
			}
		}
	}

	caption := "----"
	if digits, ok := d.Digits(); ok {
		caption = digits.String()
	}
	dc.SetFontFace(captionFace)
	dc.SetColor(Lit)
	dc.DrawStringAnchored(caption, float64(w)/2, float64(marginPx+gridRows*cellPx+captionPx/2), 0.5, 0.5)
	return dc
}

// cellCenter returns the pixel at the middle of a grid cell of digit i, the
// thousands digit leftmost.
func cellCenter(i int, pt image.Point) image.Point {
	digitPx := (gridCols + 1) * cellPx
	return image.Point{
		X: marginPx + (3-i)*digitPx + pt.X*cellPx + cellPx/2,
		Y: marginPx + pt.Y*cellPx + cellPx/2,
	}
}
