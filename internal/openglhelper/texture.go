package openglhelper

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
)

// Texture is a 2D texture whose storage is allocated before its pixels
// arrive. Until Init succeeds it is incomplete and must not be sampled.
type Texture struct {
	ID       uint32
	complete bool
}

// AllocTexture reserves a texture name without storage.
func AllocTexture() *Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return &Texture{ID: id}
}

// Init uploads img as straight-alpha RGBA8 with linear filtering and repeat wrapping.
// A texture can only be initialized once.
func (t *Texture) Init(img *image.NRGBA) error {
	if t.complete {
		return errors.Errorf("texture %d already initialized", t.ID)
	}
	b := img.Bounds()
	if b.Empty() {
		return errors.New("empty image")
	}

	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed only when the stride matches the width.
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.complete = true
	return nil
}

// Complete reports whether pixels have been uploaded.
func (t *Texture) Complete() bool {
	return t.complete
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}
