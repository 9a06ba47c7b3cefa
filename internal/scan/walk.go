package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

// Walker enumerates directories and collects image records.
type Walker struct {
	extractor *Extractor
	sink      diag.Sink
}

// NewWalker creates a Walker reporting diagnostics through sink.
func NewWalker(sink diag.Sink) *Walker {
	return &Walker{
		extractor: NewExtractor(sink),
		sink:      sink,
	}
}

// pending is one queued directory entry awaiting processing.
type pending struct {
	path  string
	entry os.DirEntry
}

// Walk scans root and returns the records for every qualifying image file.
//
// With recursive set, subdirectories are expanded depth-first: a
// subdirectory's records appear before those of its later siblings.
// Without it, subdirectories are neither entered nor reported. Entry order
// within one directory is whatever the listing call returns; callers must
// not rely on a particular order across platforms.
//
// A subdirectory that cannot be listed is reported to the sink and
// skipped; the rest of the walk still completes and partial results are
// returned. Only a root that does not exist, is not a directory, or
// cannot be listed fails the call.
func (w *Walker) Walk(root string, recursive bool) ([]Record, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", root, err)
	}

	// Explicit work list instead of language recursion, so tree depth is
	// bounded by the heap and not the goroutine stack.
	var stack []pending
	push := func(dir string, entries []os.DirEntry) {
		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, pending{
				path:  filepath.Join(dir, entries[i].Name()),
				entry: entries[i],
			})
		}
	}
	push(root, entries)

	records := []Record{}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.entry.IsDir() {
			if !recursive {
				continue
			}
			sub, err := os.ReadDir(item.path)
			if err != nil {
				w.sink.Event("scan: skipping unreadable directory %s: %v", item.path, err)
				continue
			}
			push(item.path, sub)
			continue
		}

		if rec, ok := w.extractor.Extract(item.path); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
