package ecs

// Each2 iterates over entities that have both component A and B, in the order
// of sa. Ordering follows one fixed store so results are reproducible.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for i, id := range sa.ids {
		if j, ok := sb.index[id]; ok {
			fn(id, sa.data[i], sb.data[j])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C, in the order
// of sa.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i, id := range sa.ids {
		j, ok := sb.index[id]
		if !ok {
			continue
		}
		k, ok := sc.index[id]
		if !ok {
			continue
		}
		fn(id, sa.data[i], sb.data[j], sc.data[k])
	}
}

// Without reports whether id is absent from every given store. Used to filter
// queries ("velocity but no acceleration").
func Without(id EntityID, stores ...interface{ Has(EntityID) bool }) bool {
	for _, s := range stores {
		if s.Has(id) {
			return false
		}
	}
	return true
}
