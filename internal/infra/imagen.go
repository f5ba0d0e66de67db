package infra

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // decoder registration

	"github.com/nfnt/resize"
)

// LadoMaximoImagen is the longest side, in pixels, sent to the sidecar.
// Ledger photos from phones are far larger than the model needs.
const LadoMaximoImagen = 1600

// ReducirImagen decodes a JPEG or PNG, scales it down so neither side exceeds
// ladoMax (keeping the aspect ratio) and re-encodes it as JPEG.
// Images already within bounds are only re-encoded.
func ReducirImagen(data []byte, ladoMax uint) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imagen: formato no soportado: %w", err)
	}

	b := img.Bounds()
	if uint(b.Dx()) > ladoMax || uint(b.Dy()) > ladoMax {
		img = resize.Thumbnail(ladoMax, ladoMax, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 82}); err != nil {
		return nil, "", fmt.Errorf("imagen: encode: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
