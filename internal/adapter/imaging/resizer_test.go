package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))

	return buf.Bytes()
}

func TestProcessResizesToFixedSquare(t *testing.T) {
	resizer := NewResizer()

	for _, size := range [][2]int{{16, 16}, {640, 480}, {3, 900}} {
		out, err := resizer.Process(encodePNG(t, size[0], size[1]))

		assert.NoError(t, err)

		decoded, format, err := image.Decode(bytes.NewReader(out))
		assert.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 250, decoded.Bounds().Dx())
		assert.Equal(t, 250, decoded.Bounds().Dy())
	}
}

func TestProcessAcceptsJpeg(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20)), nil))

	out, err := NewResizer().Process(buf.Bytes())

	assert.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := NewResizer().Process([]byte("plain text"))

	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
