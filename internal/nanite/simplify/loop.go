package simplify

// run drives the main collapse loop (spec.md §4.3 "Main loop") until
// the queue empties or the valid-triangle count reaches target.
func (s *state) run(target int) {
	for s.validTriangles > target && s.queue.Size() > 0 {
		best, ok := s.queue.PeekMin()
		if !ok {
			return
		}

		keep, remove := s.keepRemove(best.Edge.A, best.Edge.B)
		trisWithKeep := s.vertTri[keep]
		trisWithRemove := s.vertTri[remove]

		removed := intersectInts(trisWithKeep, trisWithRemove)
		if len(removed) != 2 {
			s.queue.Erase(best.Edge)
			continue
		}

		updatedAll := unionInts(trisWithKeep, trisWithRemove)
		updated := subtractInts(updatedAll, removed)

		if !s.passesFlipAndDegeneracy(updated, keep, remove, best.Position) {
			s.rejectedGuards++
			s.queue.Erase(best.Edge)
			continue
		}
		if !s.passesNonManifold(updated, keep, remove) {
			s.rejectedGuards++
			s.queue.Erase(best.Edge)
			continue
		}

		s.commit(best, keep, remove, removed, updated)
	}
}

// keepRemove picks the surviving vertex: if exactly one endpoint is
// fixed, it is kept; otherwise A is kept arbitrarily (both endpoints
// move to the same target position regardless).
func (s *state) keepRemove(a, b uint32) (keep, remove uint32) {
	if s.fixed[b] && !s.fixed[a] {
		return b, a
	}
	return a, b
}

func intersectInts(a, b []int) []int {
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	var out []int
	for _, v := range b {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

func unionInts(a, b []int) []int {
	set := make(map[int]bool, len(a)+len(b))
	var out []int
	for _, v := range a {
		if !set[v] {
			set[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !set[v] {
			set[v] = true
			out = append(out, v)
		}
	}
	return out
}

func subtractInts(a, remove []int) []int {
	set := make(map[int]bool, len(remove))
	for _, v := range remove {
		set[v] = true
	}
	var out []int
	for _, v := range a {
		if !set[v] {
			out = append(out, v)
		}
	}
	return out
}

// substitutedVertex returns the position idx would have after the
// pending collapse, without mutating the mesh.
func (s *state) substitutedVertex(idx, keep, remove uint32, target [3]float32) [3]float32 {
	if idx == keep || idx == remove {
		return target
	}
	v := s.mesh.Vertices[idx]
	return [3]float32{v.X, v.Y, v.Z}
}
