package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/gif" // register decoders for the generic image.Decode
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// CompressImage decodes, downscales to maxDimension (keeping aspect ratio),
// and re-encodes as JPEG. Uploaded avatars and logos always land in storage
// as bounded-size JPEGs regardless of the source format.
func CompressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var newWidth, newHeight int
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		} else {
			newWidth = width
			newHeight = height
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		} else {
			newWidth = width
			newHeight = height
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
