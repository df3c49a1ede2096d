package tagden

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{`l:\scorpc\game\foo\bar.txt`, filepath.Join("foo", "bar.txt")},
		{`l:\scorpc\game\TAGFILES\SCORCH.TXT`, filepath.Join("TAGFILES", "SCORCH.TXT")},
		{`L:\SCORPC\GAME\gfx\title.pix`, filepath.Join("gfx", "title.pix")},
		{`l:/scorpc/game/sound/fx.raw`, filepath.Join("sound", "fx.raw")},
		{`l:\scorpc\game\top.bin`, "top.bin"},
	}

	for _, c := range cases {
		got, err := DestPath(c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.want, got, c.path)
	}
}

func TestDestPathRejectsForeignPaths(t *testing.T) {
	cases := []string{
		``,
		`l:\scorpc\game`,
		`l:\scorpc\game\`,
		`c:\windows\system.ini`,
		`l:\scorpc\tools\conv.exe`,
		`l:\other\game\foo.bin`,
		`scorpc\game\foo.bin`,
	}

	for _, c := range cases {
		_, err := DestPath(c)
		require.ErrorIs(t, err, ErrBadPath, "%q", c)
	}
}
