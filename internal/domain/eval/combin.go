package eval

// Combinations returns every size-k subset of items in lexicographic order
// by source index. Subsets are positional: duplicate values are treated as
// distinct elements. k > len(items) yields no subsets; k == 0 yields the
// single empty subset.
func Combinations[T any](items []T, k int) [][]T {
	n := len(items)
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]T{{}}
	}

	var (
		out [][]T
		idx = make([]int, k)
	)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]T, k)
		for i, j := range idx {
			subset[i] = items[j]
		}
		out = append(out, subset)

		// Advance the rightmost index that still has room.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
