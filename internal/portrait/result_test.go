package portrait

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, size int) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return buf.Bytes()
}

func TestResultImage(t *testing.T) {
	data := testPNG(t, 16)
	r := New("full", data, lo.ToPtr[int64](7))

	first, err := r.Image()
	require.NoError(t, err)
	assert.Equal(t, 16, first.Bounds().Dx())

	// The decode is memoized.
	second, err := r.Image()
	require.NoError(t, err)
	assert.Same(t, first, second)

	w, h, err := r.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, len(data), r.Len())
}

func TestResultImageError(t *testing.T) {
	r := New("full", []byte("not a png"), nil)

	_, err := r.Image()
	require.Error(t, err)
	_, _, err = r.Bounds()
	assert.Error(t, err)
}

func TestRelabel(t *testing.T) {
	r := New("full", testPNG(t, 8), lo.ToPtr[int64](7))
	relabeled := r.Relabel("icon")

	assert.Equal(t, "icon", relabeled.Name)
	assert.Equal(t, "full", r.Name)
	// Bytes and seed are shared, not copied.
	assert.Same(t, &r.PNG[0], &relabeled.PNG[0])
	assert.Same(t, r.Seed, relabeled.Seed)

	// Each instance memoizes its own decode.
	a := lo.Must(r.Image())
	b := lo.Must(relabeled.Image())
	assert.NotSame(t, a, b)
}

func TestSave(t *testing.T) {
	data := testPNG(t, 8)
	r := New("full", data, nil)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, r.Save(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestUniformPixel(t *testing.T) {
	r := New("full", testPNG(t, 4), nil)
	m, err := r.Image()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		color.NRGBAModel.Convert(m.At(2, 2)))
}
