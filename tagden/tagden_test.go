package tagden

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(w *bytes.Buffer, tag uint16, offset, size uint32, path string) {
	raw := append([]byte(path), 0x00)
	binary.Write(w, binary.BigEndian, [2]byte{})
	binary.Write(w, binary.BigEndian, tag)
	binary.Write(w, binary.BigEndian, offset)
	binary.Write(w, binary.BigEndian, size)
	binary.Write(w, binary.BigEndian, uint16(0))
	binary.Write(w, binary.BigEndian, uint16(frameHeaderSize+len(raw)))
	w.Write(raw)
}

// writeTerminator emits a frame header whose tag ends the directory.
func writeTerminator(w *bytes.Buffer) {
	binary.Write(w, binary.BigEndian, [2]byte{})
	binary.Write(w, binary.BigEndian, uint16(0))
	binary.Write(w, binary.BigEndian, uint32(0))
	binary.Write(w, binary.BigEndian, uint32(0))
	binary.Write(w, binary.BigEndian, uint16(0))
	binary.Write(w, binary.BigEndian, uint16(frameHeaderSize))
}

func TestReadDirectoryOrder(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 16, 100, 10, `l:\scorpc\game\a.bin`)
	writeFrame(&buf, 16, 110, 0, `l:\scorpc\game\b.bin`)
	writeFrame(&buf, 16, 110, 25, `l:\scorpc\game\gfx\c.pix`)
	writeTerminator(&buf)

	entries, err := ReadDirectory(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{Path: `l:\scorpc\game\a.bin`, Tag: TagEntry, Offset: 100, Size: 10}, entries[0])
	assert.Equal(t, Entry{Path: `l:\scorpc\game\b.bin`, Tag: TagEntry, Offset: 110, Size: 0}, entries[1])
	assert.Equal(t, Entry{Path: `l:\scorpc\game\gfx\c.pix`, Tag: TagEntry, Offset: 110, Size: 25}, entries[2])
}

func TestNextStopsAtTerminatorHeader(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 16, 32, 4, `l:\scorpc\game\a.bin`)
	writeTerminator(&buf)
	trailer := []byte("payload space, never part of the directory")
	buf.Write(trailer)

	r := bytes.NewReader(buf.Bytes())
	dir := NewDirectoryReader(r)

	_, err := dir.Next()
	require.NoError(t, err)

	_, err = dir.Next()
	require.ErrorIs(t, err, EndOfDirectory)

	// The terminator's header is consumed; the bytes beyond it are not.
	assert.Equal(t, len(trailer), r.Len())

	// Exhausted readers stay exhausted.
	_, err = dir.Next()
	require.ErrorIs(t, err, EndOfDirectory)
}

func TestNextTruncatedHeader(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 16, 0, 0, `l:\scorpc\game\a.bin`)

	short := buf.Bytes()[:buf.Len()-30]
	_, err := ReadDirectory(bytes.NewReader(short))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestNextTruncatedPath(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 16, 0, 0, `l:\scorpc\game\a.bin`)

	short := buf.Bytes()[:buf.Len()-5]
	_, err := ReadDirectory(bytes.NewReader(short))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestNextFrameShorterThanHeader(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, [2]byte{})
	binary.Write(&buf, binary.BigEndian, uint16(16))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, uint16(0))
	binary.Write(&buf, binary.BigEndian, uint16(8))

	_, err := ReadDirectory(&buf)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestNextPathWithoutTerminator(t *testing.T) {
	var buf bytes.Buffer
	path := []byte(`l:\scorpc\game\a.bin`)
	binary.Write(&buf, binary.BigEndian, [2]byte{})
	binary.Write(&buf, binary.BigEndian, uint16(16))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, uint16(0))
	binary.Write(&buf, binary.BigEndian, uint16(frameHeaderSize+len(path)))
	buf.Write(path)

	_, err := ReadDirectory(&buf)
	require.ErrorIs(t, err, ErrBadPath)
}

func TestNextPathNotText(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, 16, 0, 0, "l:\\scorpc\\game\\\xff\xfe.bin")
	writeTerminator(&buf)

	_, err := ReadDirectory(&buf)
	require.ErrorIs(t, err, ErrBadPath)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "Tag(Entry)", TagEntry.String())
	assert.Equal(t, "Tag(UNKNOWN)", Tag(3).String())
}
