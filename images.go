package scorcher

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/32bitkid/scorcher/pix"
	"github.com/32bitkid/scorcher/tagden"
)

// IsPixelmap reports whether an asset path names a packed image.
func IsPixelmap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pix.Ext)
}

// Images returns the entries whose embedded paths name packed images,
// in archive order.
func (a *Archive) Images() []tagden.Entry {
	var images []tagden.Entry
	for _, entry := range a.Entries {
		if IsPixelmap(entry.Path) {
			images = append(images, entry)
		}
	}
	return images
}

// DecodeImage decodes one entry's payload as a pixelmap.
func (a *Archive) DecodeImage(e tagden.Entry) (*image.RGBA, error) {
	payload, err := a.Payload(e)
	if err != nil {
		return nil, err
	}

	img, err := pix.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Path, err)
	}
	return img, nil
}
