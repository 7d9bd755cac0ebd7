package wallpaper

import "golang.org/x/text/cases"

// AcquisitionDeduplicator remembers which base names were already acquired in this run.
// Markets frequently share the same daily image, so the set is keyed case-insensitively
// using Unicode case folding, which does not depend on the user's locale.
type AcquisitionDeduplicator struct {
	folder cases.Caser
	seen   map[string]struct{}
}

// NewAcquisitionDeduplicator returns an empty seen-set.
func NewAcquisitionDeduplicator() *AcquisitionDeduplicator {
	return &AcquisitionDeduplicator{
		folder: cases.Fold(),
		seen:   make(map[string]struct{}),
	}
}

// ShouldAcquire returns true the first time baseName is offered and marks it acquired.
// Every later call with any casing of the same name returns false.
func (d *AcquisitionDeduplicator) ShouldAcquire(baseName string) bool {
	key := d.folder.String(baseName)
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// MarkAcquired records baseName without asking.
func (d *AcquisitionDeduplicator) MarkAcquired(baseName string) {
	d.seen[d.folder.String(baseName)] = struct{}{}
}

// Len returns the number of distinct names seen.
func (d *AcquisitionDeduplicator) Len() int {
	return len(d.seen)
}
