/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package tracker

/*****************************************************************************************************************/

import "github.com/quietloom/artrack/pkg/affine"

/*****************************************************************************************************************/

// maxMatchedKeypoints (K_MAX) bounds how many correspondences are kept for
// the geometric fit, ordered by ascending descriptor distance.
const maxMatchedKeypoints = 256

/*****************************************************************************************************************/

// topKBuffer keeps the best (lowest-distance) correspondences seen so far,
// capped at maxMatchedKeypoints and kept sorted by ascending distance. A new
// entry is inserted in order and the worst entry is dropped once the buffer
// is full, mirroring the source tracker's fixed-size insertion-sorted
// correspondence buffer.
type topKBuffer struct {
	pairs      []affine.Correspondence
	distances  []float64
	maxEntries int
}

/*****************************************************************************************************************/

func newTopKBuffer(maxEntries int) *topKBuffer {
	return &topKBuffer{maxEntries: maxEntries}
}

/*****************************************************************************************************************/

// worst returns the current worst (largest) kept distance, or +Inf if the
// buffer has not reached capacity yet - an unfilled buffer always has room,
// so any candidate is accepted regardless of its distance.
func (b *topKBuffer) worst() float64 {
	if len(b.distances) < b.maxEntries {
		return posInf
	}
	return b.distances[len(b.distances)-1]
}

/*****************************************************************************************************************/

// insert places the correspondence in sorted position by ascending
// distance, dropping the current worst entry once the buffer is at
// capacity.
func (b *topKBuffer) insert(c affine.Correspondence, distance float64) {
	if distance >= b.worst() {
		return
	}

	pos := len(b.distances)
	for pos > 0 && b.distances[pos-1] > distance {
		pos--
	}

	b.distances = append(b.distances, 0)
	b.pairs = append(b.pairs, affine.Correspondence{})
	copy(b.distances[pos+1:], b.distances[pos:])
	copy(b.pairs[pos+1:], b.pairs[pos:])
	b.distances[pos] = distance
	b.pairs[pos] = c

	if len(b.distances) > b.maxEntries {
		b.distances = b.distances[:b.maxEntries]
		b.pairs = b.pairs[:b.maxEntries]
	}
}

/*****************************************************************************************************************/

func (b *topKBuffer) len() int {
	return len(b.pairs)
}

/*****************************************************************************************************************/
