package collapsequeue

// collapseHeap implements heap.Interface over *Collapse, tracking each
// element's index so that an element's position is always known for
// the side-table in Queue.
type collapseHeap []*Collapse

func (h collapseHeap) Len() int { return len(h) }

func (h collapseHeap) Less(i, j int) bool { return h[i].less(h[j]) }

func (h collapseHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *collapseHeap) Push(x interface{}) {
	c := x.(*Collapse)
	c.index = len(*h)
	*h = append(*h, c)
}

func (h *collapseHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.index = -1
	*h = old[:n-1]
	return c
}
