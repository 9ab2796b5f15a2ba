package graphpart

import "sort"

// Options configures a k-way partition request.
type Options struct {
	K         int     // number of parts, K >= 1
	UBVec     float64 // allowed vertex-weight imbalance ratio, >= 1.0
}

// Result is the outcome of a successful partition.
type Result struct {
	Part []int32 // Part[v] is the part ID of vertex v, in [0,K)
	Cut  int64   // total edge weight crossing part boundaries
}

// Partitioner is the abstract k-way partitioning capability the
// Partitioner and Cluster grouper components depend on.
type Partitioner interface {
	Partition(g *Graph, opts Options) (Result, error)
}

// Default is a balanced greedy region-growing partitioner: parts are
// grown one at a time by repeatedly annexing the unassigned neighbor
// reachable via the heaviest edge, which tends to keep heavily
// connected vertices together and produce round, low-cut regions,
// until the part's weight reaches an even share of the weight not yet
// assigned (never more than its fair share times the allowed
// imbalance). Leftover vertices (disconnected fragments) are assigned
// to whichever part is currently lightest.
type Default struct{}

// Partition implements Partitioner.
func (Default) Partition(g *Graph, opts Options) (Result, error) {
	n := g.NumVertices()
	if opts.K <= 0 || n == 0 {
		return Result{}, ErrPartitionFailed
	}
	if opts.K == 1 {
		part := make([]int32, n)
		return Result{Part: part}, nil
	}

	var totalWeight int64
	for v := 0; v < n; v++ {
		totalWeight += int64(g.weightOf(v))
	}
	fairShare := float64(totalWeight) / float64(opts.K)
	limit := fairShare * maxf64(opts.UBVec, 1.0)

	part := make([]int32, n)
	assigned := make([]bool, n)
	partWeight := make([]int64, opts.K)
	var assignedWeight int64

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return g.weightOf(order[i]) > g.weightOf(order[j]) })

	current := 0
	var nextUnassignedIdx int
	nextUnassigned := func() int {
		for nextUnassignedIdx < len(order) {
			v := order[nextUnassignedIdx]
			nextUnassignedIdx++
			if !assigned[v] {
				return v
			}
		}
		return -1
	}

	for current < opts.K {
		seed := nextUnassigned()
		if seed < 0 {
			break
		}
		// Aim at an even share of what is still unassigned, so early
		// parts cannot starve later ones.
		target := float64(totalWeight-assignedWeight) / float64(opts.K-current)
		if target > limit {
			target = limit
		}
		assigned[seed] = true
		part[seed] = int32(current)
		partWeight[current] += int64(g.weightOf(seed))

		frontier := []int{seed}
		for len(frontier) > 0 && float64(partWeight[current]) < target {
			best, bestFrom := bestNeighbor(g, frontier, assigned)
			if best < 0 {
				break
			}
			assigned[best] = true
			part[best] = int32(current)
			partWeight[current] += int64(g.weightOf(best))
			frontier = append(frontier, best)
			_ = bestFrom
		}
		assignedWeight += partWeight[current]
		current++
	}

	// Any vertex not reached by region growing (isolated fragments, or
	// the imbalance cap stopped growth before the graph was exhausted)
	// goes to whichever part currently carries the least weight.
	for v := 0; v < n; v++ {
		if assigned[v] {
			continue
		}
		lightest := 0
		for p := 1; p < opts.K; p++ {
			if partWeight[p] < partWeight[lightest] {
				lightest = p
			}
		}
		assigned[v] = true
		part[v] = int32(lightest)
		partWeight[lightest] += int64(g.weightOf(v))
	}

	return Result{Part: part, Cut: cutWeight(g, part)}, nil
}

// bestNeighbor scans every vertex on the frontier for its unassigned
// neighbor reachable via the heaviest edge, returning -1 if the
// frontier has no unassigned neighbors left.
func bestNeighbor(g *Graph, frontier []int, assigned []bool) (best, from int) {
	best, from = -1, -1
	var bestWeight int32 = -1
	for _, v := range frontier {
		neighbors := g.Neighbors(v)
		weights := g.EdgeWeights(v)
		for i, nb := range neighbors {
			if assigned[nb] {
				continue
			}
			w := int32(1)
			if weights != nil {
				w = weights[i]
			}
			if w > bestWeight {
				bestWeight = w
				best = int(nb)
				from = v
			}
		}
	}
	return best, from
}

// cutWeight sums the weight of every edge whose endpoints land in
// different parts.
func cutWeight(g *Graph, part []int32) int64 {
	var cut int64
	for v := 0; v < g.NumVertices(); v++ {
		neighbors := g.Neighbors(v)
		weights := g.EdgeWeights(v)
		for i, nb := range neighbors {
			if int(nb) <= v {
				continue // count each undirected edge once
			}
			if part[v] == part[nb] {
				continue
			}
			w := int32(1)
			if weights != nil {
				w = weights[i]
			}
			cut += int64(w)
		}
	}
	return cut
}

func maxf64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
