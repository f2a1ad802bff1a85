package imager

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// Probe decodes just enough of the stream to learn pixel dimensions. Failure
// is not an error: an undecodable image is stored anyway and reported as 0x0,
// matching how the upload path treats dimension probing as best effort.
func Probe(r io.Reader) (width, height int) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
