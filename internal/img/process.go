package img

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-logr/logr"
)

// Processor normalizes backend output into exact square dimensions:
// decode, center-crop to the shorter side, Lanczos resize, encode PNG.
type Processor struct{}

// Process returns targetSize x targetSize PNG bytes. sourceHint is the
// size the backend was asked for; it is only used for logging, the crop
// and resize work from the decoded dimensions.
func (*Processor) Process(ctx context.Context, raw []byte, targetSize, sourceHint int) ([]byte, error) {
	decoded, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if _, ok := decoded.(*image.Paletted); ok {
		decoded = imaging.Clone(decoded)
	}

	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if sourceHint > 0 && width != sourceHint {
		logr.FromContextOrDiscard(ctx).WithName("processor").
			Info("backend returned unexpected dimensions", "width", width, "height", height, "expected", sourceHint)
	}

	squared := centerCropSquare(decoded)
	if squared.Bounds().Dx() != targetSize {
		squared = imaging.Resize(squared, targetSize, targetSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, squared, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// centerCropSquare crops to the center square of the shorter dimension.
// Already-square images pass through untouched.
func centerCropSquare(in image.Image) image.Image {
	bounds := in.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == height {
		return in
	}
	side := min(width, height)
	return imaging.CropCenter(in, side, side)
}
