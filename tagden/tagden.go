// Package tagden implements the directory format of TAGDEN.BIN, the
// monolithic data file shipped with Scorcher.
//
// The file opens with a run of directory frames, one per embedded asset.
// Each frame names the asset by the absolute path it had on the build
// machine and points at a raw payload range later in the same file. The
// directory ends at the first frame whose type tag is not the entry tag;
// everything after that is payload space addressed by the entries.
package tagden

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

type Tag uint16

const TagEntry Tag = 16

func (t Tag) String() string {
	switch t {
	case TagEntry:
		return "Tag(Entry)"
	}
	return "Tag(UNKNOWN)"
}

// Entry is one directory frame: an asset path and the payload range that
// holds its bytes.
type Entry struct {
	Path   string
	Tag    Tag
	Offset uint32
	Size   uint32
}

// EndOfDirectory is returned by DirectoryReader.Next once the directory
// section is exhausted. It marks successful completion, not a failure.
var EndOfDirectory = errors.New("tagden: end of directory")

var (
	ErrTruncated = errors.New("tagden: truncated archive")
	ErrBadPath   = errors.New("tagden: bad entry path")
)

// Every frame header spans 16 bytes: two reserved bytes, then the frame
// fields. The frame size field counts from the start of those reserved
// bytes, so the path occupies frameSize-16 bytes.
const frameHeaderSize = 16

// A DirectoryReader walks the directory frames at the head of an archive.
// It is forward-only: once Next has returned EndOfDirectory or an error,
// every later call returns the same result, and the underlying reader is
// left positioned just past the last consumed frame header.
type DirectoryReader struct {
	r   io.Reader
	err error
}

func NewDirectoryReader(r io.Reader) *DirectoryReader {
	return &DirectoryReader{r: r}
}

// Next consumes one frame and returns its Entry. The first frame whose
// tag is not TagEntry terminates the directory: Next consumes that
// frame's header, nothing beyond it, and returns EndOfDirectory.
func (d *DirectoryReader) Next() (Entry, error) {
	if d.err != nil {
		return Entry{}, d.err
	}

	var header struct {
		_      [2]byte
		Tag    uint16
		Offset uint32
		Size   uint32
		_      uint16
		Length uint16
	}

	if err := binary.Read(d.r, binary.BigEndian, &header); err != nil {
		d.err = fmt.Errorf("directory frame header: %w", ErrTruncated)
		return Entry{}, d.err
	}

	if Tag(header.Tag) != TagEntry {
		d.err = EndOfDirectory
		return Entry{}, d.err
	}

	if header.Length < frameHeaderSize {
		d.err = fmt.Errorf("directory frame of %d bytes is shorter than its header: %w", header.Length, ErrTruncated)
		return Entry{}, d.err
	}

	raw := make([]byte, header.Length-frameHeaderSize)
	if _, err := io.ReadFull(d.r, raw); err != nil {
		d.err = fmt.Errorf("directory frame path: %w", ErrTruncated)
		return Entry{}, d.err
	}

	end := bytes.IndexByte(raw, 0x00)
	if end < 0 {
		d.err = fmt.Errorf("entry path is not NUL-terminated: %w", ErrBadPath)
		return Entry{}, d.err
	}
	if !utf8.Valid(raw[:end]) {
		d.err = fmt.Errorf("entry path is not valid text: %w", ErrBadPath)
		return Entry{}, d.err
	}

	return Entry{
		Path:   string(raw[:end]),
		Tag:    Tag(header.Tag),
		Offset: header.Offset,
		Size:   header.Size,
	}, nil
}

// ReadDirectory drains a DirectoryReader and returns every entry in
// archive order.
func ReadDirectory(r io.Reader) ([]Entry, error) {
	dir := NewDirectoryReader(r)

	var entries []Entry
	for {
		entry, err := dir.Next()
		if errors.Is(err, EndOfDirectory) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}
