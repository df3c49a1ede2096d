// Package scorcher implements access to the game assets of Scorcher,
// Zyrinx's 1996 futuristic racer for MS-DOS.
//
// The game ships every asset inside one data file, TAGDEN.BIN. The file
// opens with a directory of frames, each naming an asset by the
// absolute path it had on the build machine and pointing at a raw
// payload range later in the file. This package loads the directory,
// extracts payloads into a mirrored tree, and decodes the game's
// run-length pixelmap images.
package scorcher

import (
	"bytes"
	"fmt"
	"os"

	"github.com/32bitkid/scorcher/tagden"
)

// Archive is a fully loaded TAGDEN.BIN: the raw file bytes plus the
// parsed directory. Entries appear in archive order and their payload
// ranges index the shared buffer.
type Archive struct {
	Path    string
	Entries []tagden.Entry

	buf []byte
}

// Open reads an archive into memory and parses its directory.
func Open(path string) (*Archive, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	entries, err := tagden.ReadDirectory(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Archive{
		Path:    path,
		Entries: entries,
		buf:     buf,
	}, nil
}

// Payload returns the raw bytes of one entry. Entries whose range runs
// past the end of the buffer fail with tagden.ErrTruncated.
func (a *Archive) Payload(e tagden.Entry) ([]byte, error) {
	end := int64(e.Offset) + int64(e.Size)
	if end > int64(len(a.buf)) {
		return nil, fmt.Errorf("%s payload [%d:%d) runs past %d archive bytes: %w",
			e.Path, e.Offset, end, len(a.buf), tagden.ErrTruncated)
	}
	return a.buf[e.Offset:end], nil
}
