package collapse

// propagate narrows domains reachable from start to the greatest fixed
// point consistent with the adjacency table. It reports false, leaving
// failAt set, as soon as a domain becomes empty; the remaining work is
// dropped because the attempt is over anyway.
//
// Domains only ever shrink: every update is an intersection.
// Collapsed neighbors are narrowed and re-pushed like any other cell,
// which is how an over-constrained collapsed cell surfaces as a
// contradiction.
func (r *Run) propagate(start int) bool {
	table := r.eng.table
	r.stack = append(r.stack[:0], start)
	for len(r.stack) > 0 {
		idx := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		domain := r.g.At(idx).Domain
		col, row := r.g.Coordinate(idx)
		r.nbuf = r.g.AppendNeighbors(r.nbuf[:0], col, row)
		for _, nb := range r.nbuf {
			r.support = table.Support(domain, nb.Dir, r.support)

			ni := r.g.Index(nb.Col, nb.Row)
			nd := r.g.At(ni).Domain
			before := nd.Count()
			nd.InPlaceIntersection(r.support)
			after := nd.Count()
			if after == before {
				continue
			}
			if after == 0 {
				r.failAt = ni
				r.stack = r.stack[:0]
				return false
			}
			r.stack = append(r.stack, ni)
		}
	}
	return true
}
