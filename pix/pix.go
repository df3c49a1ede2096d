// Package pix decodes Scorcher's run-length "pixelmap" images into
// standard rasters.
//
// A pixelmap holds an 8-byte signature, big-endian 32-bit width and
// height, one big-endian 32-bit run offset per scanline, and then the
// pixel payload. A scanline's offset counts 16-bit words from the start
// of the payload; the all-ones offset means the scanline has no runs at
// all and keeps the background color.
package pix

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/32bitkid/bitreader"
)

// Magic is the signature that opens every pixelmap.
const Magic = "PIXELMAP"

// Ext is the filename extension pixelmaps carry inside the archive,
// matched case-insensitively.
const Ext = ".pix"

const noRuns uint32 = (1 << 32) - 1

// Dimensions above this are taken as corruption rather than content;
// the game's art tops out at 640x480.
const maxDimension = 1 << 14

var (
	ErrFormat    = errors.New("pix: not a pixelmap")
	ErrTruncated = errors.New("pix: truncated image")
	ErrRunBounds = errors.New("pix: run outside image bounds")
)

// Decode reads a pixelmap and returns the raster it describes. The
// raster starts as opaque black; scanlines with runs overwrite their
// covered columns and everything else keeps the background.
func Decode(b []byte) (*image.RGBA, error) {
	r := bytes.NewReader(b)

	var header struct {
		Magic  [8]byte
		Width  uint32
		Height uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("pixelmap header: %w", ErrTruncated)
	}
	if string(header.Magic[:]) != Magic {
		return nil, fmt.Errorf("%w: bad signature %q", ErrFormat, header.Magic)
	}
	if header.Width > maxDimension || header.Height > maxDimension {
		return nil, fmt.Errorf("%w: implausible dimensions %dx%d", ErrFormat, header.Width, header.Height)
	}

	offsets := make([]uint32, header.Height)
	if err := binary.Read(r, binary.BigEndian, offsets); err != nil {
		return nil, fmt.Errorf("run offset table: %w", ErrTruncated)
	}

	payload := b[len(b)-r.Len():]

	width, height := int(header.Width), int(header.Height)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}

	for y, offset := range offsets {
		if offset == noRuns {
			continue
		}
		if err := decodeRow(img, y, width, payload, offset); err != nil {
			return nil, err
		}
	}

	return img, nil
}

// runReader pulls the 16-bit fields of one scanline's run chain off the
// payload stream.
type runReader struct {
	bits bitreader.BitReader
	y    int
}

func (r runReader) next() (int, error) {
	v, err := r.bits.Read16(16)
	if err != nil {
		return 0, fmt.Errorf("scanline %d ends mid-run: %w", r.y, ErrTruncated)
	}
	return int(v), nil
}

// decodeRow replays one scanline's run chain: a start column and pixel
// count, that many packed pixels, then a column delta. A zero delta
// ends the scanline; any other value opens the next run at
// x + delta + count with a fresh count.
func decodeRow(img *image.RGBA, y, width int, payload []byte, offset uint32) error {
	at := int64(offset) * 2
	if at >= int64(len(payload)) {
		return fmt.Errorf("scanline %d starts at word %d, past the payload: %w", y, offset, ErrTruncated)
	}

	runs := runReader{
		bits: bitreader.NewReader(bytes.NewReader(payload[at:])),
		y:    y,
	}

	x, err := runs.next()
	if err != nil {
		return err
	}
	count, err := runs.next()
	if err != nil {
		return err
	}

	for {
		if x+count > width {
			return fmt.Errorf("scanline %d run covers columns [%d,%d) of %d: %w", y, x, x+count, width, ErrRunBounds)
		}

		for i := 0; i < count; i++ {
			code, err := runs.next()
			if err != nil {
				return err
			}
			pr, pg, pb := Pixel(code).RGB()
			img.SetRGBA(x+i, y, color.RGBA{R: pr, G: pg, B: pb, A: 0xFF})
		}

		delta, err := runs.next()
		if err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}

		x += delta + count
		count, err = runs.next()
		if err != nil {
			return err
		}
	}
}
