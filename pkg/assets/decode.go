// Package assets turns fetched files into texture data.
package assets

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes an encoded image into tightly packed, non-premultiplied
// RGBA8 pixels, flipped vertically so that row 0 is the bottom of the picture
// as GL expects.
func Decode(data []byte) (*image.NRGBA, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, errors.Errorf("decode image: empty %s", format)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	toNRGBA(dst, src)
	FlipVertical(dst)

	return dst, nil
}

// toNRGBA copies src into dst keeping the color of translucent texels.
// Going through premultiplied color would zero them wherever alpha is 0.
func toNRGBA(dst *image.NRGBA, src image.Image) {
	b := src.Bounds()
	rowLen := b.Dx() * 4

	switch s := src.(type) {
	case *image.NRGBA:
		for y := range b.Dy() {
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], s.Pix[i:i+rowLen])
		}
	case *image.NRGBA64:
		for y := range b.Dy() {
			for x := range b.Dx() {
				i := s.PixOffset(b.Min.X+x, b.Min.Y+y)
				j := y*dst.Stride + x*4
				// High byte of each 16-bit channel.
				dst.Pix[j+0] = s.Pix[i+0]
				dst.Pix[j+1] = s.Pix[i+2]
				dst.Pix[j+2] = s.Pix[i+4]
				dst.Pix[j+3] = s.Pix[i+6]
			}
		}
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		// Opaque, so premultiplication is lossless.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := range b.Dy() {
			for x := range b.Dx() {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)

	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
