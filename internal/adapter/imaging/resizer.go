package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

const avatarSize = 250

var ErrUnsupportedImage = errors.New("unsupported image format")

// Resizer normalizes uploaded avatars: decode jpeg or png, scale to a
// fixed 250x250 square, re-encode as png. Stored avatars all share one
// shape and format regardless of what was uploaded.
type Resizer struct{}

func NewResizer() *Resizer {
	return &Resizer{}
}

func (r *Resizer) Process(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))

	if err != nil {
		return nil, ErrUnsupportedImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var out bytes.Buffer

	if err := png.Encode(&out, dst); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
