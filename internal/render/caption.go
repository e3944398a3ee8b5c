package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// stampCaption draws text onto the bottom-left corner of an encoded PNG.
func stampCaption(encoded []byte, text string) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "decode chart")
	}

	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 6)},
	}
	dr.DrawString(text)

	var out bytes.Buffer
	if err := png.Encode(&out, rgba); err != nil {
		return nil, errors.Wrap(err, "encode chart")
	}
	return out.Bytes(), nil
}
