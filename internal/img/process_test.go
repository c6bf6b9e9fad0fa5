package img

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func encodePNG(t *testing.T, m image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return buf.Bytes()
}

// fillPNG paints each pixel with pick(x, y) and encodes the result.
func fillPNG(t *testing.T, width, height int, pick func(x, y int) color.NRGBA) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, pick(x, y))
		}
	}
	return encodePNG(t, m)
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	decoded, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return decoded
}

func pixel(t *testing.T, m image.Image, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
}

func assertAllCorners(t *testing.T, m image.Image, want color.NRGBA) {
	t.Helper()
	b := m.Bounds()
	for _, pt := range []image.Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	} {
		assert.Equal(t, want, pixel(t, m, pt.X, pt.Y), "pixel at %v", pt)
	}
}

func TestProcessCropsLandscapeCenter(t *testing.T) {
	// Left and right 50px flanks are colored; only the center 100x100
	// square is green and should survive the crop.
	raw := fillPNG(t, 200, 100, func(x, _ int) color.NRGBA {
		switch {
		case x < 50:
			return red
		case x >= 150:
			return blue
		default:
			return green
		}
	})

	out, err := (&Processor{}).Process(context.Background(), raw, 100, 0)
	require.NoError(t, err)

	m := decodePNG(t, out)
	assert.Equal(t, 100, m.Bounds().Dx())
	assert.Equal(t, 100, m.Bounds().Dy())
	assertAllCorners(t, m, green)
}

func TestProcessCropsPortraitCenter(t *testing.T) {
	raw := fillPNG(t, 100, 200, func(_, y int) color.NRGBA {
		switch {
		case y < 50:
			return red
		case y >= 150:
			return blue
		default:
			return green
		}
	})

	out, err := (&Processor{}).Process(context.Background(), raw, 100, 0)
	require.NoError(t, err)

	m := decodePNG(t, out)
	assert.Equal(t, 100, m.Bounds().Dx())
	assert.Equal(t, 100, m.Bounds().Dy())
	assertAllCorners(t, m, green)
}

func TestProcessResizesSquare(t *testing.T) {
	raw := fillPNG(t, 1024, 1024, func(_, _ int) color.NRGBA { return green })

	out, err := (&Processor{}).Process(context.Background(), raw, 64, 1024)
	require.NoError(t, err)

	m := decodePNG(t, out)
	assert.Equal(t, 64, m.Bounds().Dx())
	assert.Equal(t, 64, m.Bounds().Dy())
	assertAllCorners(t, m, green)
}

func TestProcessSquareAtTargetPassesThrough(t *testing.T) {
	raw := fillPNG(t, 128, 128, func(_, _ int) color.NRGBA { return blue })

	out, err := (&Processor{}).Process(context.Background(), raw, 128, 128)
	require.NoError(t, err)

	m := decodePNG(t, out)
	assert.Equal(t, 128, m.Bounds().Dx())
	assert.Equal(t, 128, m.Bounds().Dy())
	assertAllCorners(t, m, blue)
}

func TestProcessPalettedInput(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 64, 64), color.Palette{green, red})
	// Index 0 is green, so the zero-filled image is uniformly green.
	out, err := (&Processor{}).Process(context.Background(), encodePNG(t, m), 32, 64)
	require.NoError(t, err)

	decoded := decodePNG(t, out)
	assert.Equal(t, 32, decoded.Bounds().Dx())
	assertAllCorners(t, decoded, green)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := (&Processor{}).Process(context.Background(), []byte("not a png"), 64, 0)
	assert.Error(t, err)
}
