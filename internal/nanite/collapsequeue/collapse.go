package collapsequeue

import "github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"

// Collapse is a candidate edge-collapse operation. The zero-value
// quadric error form lives in the caller's quadric array; Collapse
// carries only the pre-evaluated scalar Error, keeping the queue
// itself independent of the quadric package.
type Collapse struct {
	Edge     mesh.Edge
	Position [3]float32
	Error    float32
	Length   float32
	FixA     bool
	FixB     bool
	Phase    int

	index int // position in the heap, maintained by container/heap
}

// less orders two collapses by (phase, error, length, edge), the
// ascending order the simplifier's main loop relies on.
func (c *Collapse) less(other *Collapse) bool {
	if c.Phase != other.Phase {
		return c.Phase < other.Phase
	}
	if c.Error != other.Error {
		return c.Error < other.Error
	}
	if c.Length != other.Length {
		return c.Length < other.Length
	}
	return c.Edge.Less(other.Edge)
}
