// Package palette implements nearest-color matching against a fixed set of
// color/label pairs.
//
// A Palette is an immutable, ordered list of entries. Matching is a linear scan
// using the "redmean" weighted distance, computed entirely in integer
// arithmetic:
//
//	rmean    = (r1 + r2) / 2
//	weighted = ((512+rmean)*dr*dr)>>8 + 4*dg*dg + ((767-rmean)*db*db)>>8
//	distance = sqrt(weighted)
//
// When two entries are equally close, the entry that appears first in the
// palette wins. Palettes loaded from configuration keep the document order of
// the color mapping, so results are reproducible across runs.
//
// # Thread Safety
//
// Palette values are never mutated after construction and may be shared by any
// number of goroutines. Store publishes replacement palettes atomically so a
// reload never races with a build that is still reading the previous palette.
//
// # Labels
//
// Labels are opaque to this package. Validation against the host's set of known
// block types happens at load time through a LabelResolver; entries that fail
// validation never reach a Palette.
package palette
