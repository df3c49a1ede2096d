package tagden

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Every known archive roots its asset paths at the same directory of the
// original build drive.
var devPrefix = [...]string{"l:", "scorpc", "game"}

// DestPath rewrites an entry's embedded build-machine path into a
// relative path suitable for extraction: the fixed three-segment prefix
// is verified case-insensitively and stripped, and the remaining
// segments are joined with the host separator. Paths that do not carry
// the prefix, or that carry nothing after it, fail with ErrBadPath.
func DestPath(p string) (string, error) {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '\\' || r == '/'
	})

	if len(parts) <= len(devPrefix) {
		return "", fmt.Errorf("asset path %q is not under the build prefix: %w", p, ErrBadPath)
	}
	for i, want := range devPrefix {
		if !strings.EqualFold(parts[i], want) {
			return "", fmt.Errorf("asset path %q is not under the build prefix: %w", p, ErrBadPath)
		}
	}

	return filepath.Join(parts[len(devPrefix):]...), nil
}
