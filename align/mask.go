package align

// Mask is a bidirectional mapping between an original index space and the
// filtered index space that remains after logical deletion. It is built
// once and immutable; rebuilding a mask never touches the underlying
// residue data.
type Mask struct {
	// filtered[orig] is the filtered index of a kept entry, or -1.
	filtered []int
	// orig[f] is the original index of filtered entry f.
	orig []int
}

// NewMask builds a mask from per-entry keep flags.
func NewMask(keep []bool) *Mask {
	m := &Mask{
		filtered: make([]int, len(keep)),
		orig:     make([]int, 0, len(keep)),
	}
	for i, k := range keep {
		if k {
			m.filtered[i] = len(m.orig)
			m.orig = append(m.orig, i)
		} else {
			m.filtered[i] = -1
		}
	}
	return m
}

// AllKept returns a mask of size n with every entry kept.
func AllKept(n int) *Mask {
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	return NewMask(keep)
}

// Len returns the size of the original index space.
func (m *Mask) Len() int { return len(m.filtered) }

// NumKept returns the number of kept entries.
func (m *Mask) NumKept() int { return len(m.orig) }

// Keeps reports whether original index i is kept.
func (m *Mask) Keeps(i int) bool { return m.filtered[i] >= 0 }

// Filtered returns the filtered index of original index i, or -1 if i is
// excluded.
func (m *Mask) Filtered(i int) int { return m.filtered[i] }

// Orig returns the original index of filtered index f.
func (m *Mask) Orig(f int) int { return m.orig[f] }

// Kept returns the original indices of all kept entries, in order. The
// returned slice is shared and must not be modified.
func (m *Mask) Kept() []int { return m.orig }
