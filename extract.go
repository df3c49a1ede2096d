package scorcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/32bitkid/scorcher/tagden"
)

// ExtractedFile records where one entry's payload landed on disk.
type ExtractedFile struct {
	Entry tagden.Entry
	Dest  string
}

type ExtractOptions struct {
	// OnFile is invoked after each asset reaches disk.
	OnFile func(e tagden.Entry, dest string)
}

// Extract writes every entry's payload beneath dest, mirroring the
// archive's directory structure. Parent directories are created as
// needed and existing files are overwritten, so extracting twice into
// the same destination yields an identical tree. The returned slice
// maps entries to their destinations in archive order.
//
// The first failure of any kind aborts the whole run.
func (a *Archive) Extract(dest string, options ...ExtractOptions) ([]ExtractedFile, error) {
	var onFile func(tagden.Entry, string)
	for _, opts := range options {
		if opts.OnFile != nil {
			onFile = opts.OnFile
		}
	}

	extracted := make([]ExtractedFile, 0, len(a.Entries))
	for _, entry := range a.Entries {
		rel, err := tagden.DestPath(entry.Path)
		if err != nil {
			return nil, err
		}

		payload, err := a.Payload(entry)
		if err != nil {
			return nil, err
		}

		fn := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
			return nil, fmt.Errorf("extract %s: %w", entry.Path, err)
		}
		if err := os.WriteFile(fn, payload, 0644); err != nil {
			return nil, fmt.Errorf("extract %s: %w", entry.Path, err)
		}

		extracted = append(extracted, ExtractedFile{Entry: entry, Dest: fn})
		if onFile != nil {
			onFile(entry, fn)
		}
	}

	return extracted, nil
}
