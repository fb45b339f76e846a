package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

type Dimensions struct {
	Width  int
	Height int
}

var ErrUnknownImage = errors.New("unrecognized image data")

// Probe decodes only the image header in data and reports its size.
func Probe(data []byte) (Dimensions, string, error) {
	if isWebP(data) {
		w, h, _, err := webp.GetInfo(data)
		if err != nil {
			return Dimensions{}, "", err
		}
		return Dimensions{Width: w, Height: h}, "webp", nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Dimensions{}, "", ErrUnknownImage
		}
		return Dimensions{}, "", err
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, format, nil
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}
