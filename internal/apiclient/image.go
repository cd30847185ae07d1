package apiclient

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

const (
	// maxImageDimension bounds the longest side of an uploaded image.
	maxImageDimension = 1024

	jpegQuality = 80
)

// OptimizeImage re-encodes an image for upload: the longest side is scaled
// down to maxImageDimension (never up) and the result is JPEG-encoded.
// Undecodable input maps to networking/image_processing_failed.
func OptimizeImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Networking(apperrors.KindImageProcessingFailed,
			fmt.Errorf("decoding image: %w", err))
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if longest := max(width, height); longest > maxImageDimension {
		scale := float64(maxImageDimension) / float64(longest)
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, apperrors.Networking(apperrors.KindImageProcessingFailed,
			fmt.Errorf("encoding image: %w", err))
	}
	return buf.Bytes(), nil
}
