package index

import (
	"sort"

	"github.com/codescope/codescope/internal/scanner"
	"github.com/codescope/codescope/internal/store"
)

// Diff partitions a scan against stored state. Added and Modified carry the
// live scan entries; Deleted carries the stale stored paths.
type Diff struct {
	Added    []*scanner.FileInfo
	Modified []*scanner.FileInfo
	Deleted  []string
}

// HasChanges reports whether the diff requires any work.
func (d *Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Modified) > 0 || len(d.Deleted) > 0
}

// ComputeDiff compares scanned files with the stored records. A file is
// modified when its mtime or size differs from the stored value; mtimes are
// Unix milliseconds on both sides so this is an exact comparison.
func ComputeDiff(scanned []*scanner.FileInfo, indexed map[string]*store.FileRecord) *Diff {
	d := &Diff{}
	seen := make(map[string]bool, len(scanned))

	for _, f := range scanned {
		seen[f.Path] = true
		rec, ok := indexed[f.Path]
		switch {
		case !ok:
			d.Added = append(d.Added, f)
		case rec.Mtime != f.Mtime || rec.Size != f.Size:
			d.Modified = append(d.Modified, f)
		}
	}

	for path := range indexed {
		if !seen[path] {
			d.Deleted = append(d.Deleted, path)
		}
	}
	sort.Strings(d.Deleted)
	return d
}
