package eval_test

import (
	"testing"

	"github.com/okian/showdown/internal/domain/eval"
)

func TestCombinationsCounts(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{5, 5, 1},
		{6, 5, 6},
		{7, 5, 21},
		{4, 5, 0},
		{7, 0, 1},
		{3, 2, 3},
	}
	for _, tt := range tests {
		items := make([]int, tt.n)
		for i := range items {
			items[i] = i
		}
		got := eval.Combinations(items, tt.k)
		if len(got) != tt.want {
			t.Errorf("Combinations(n=%d, k=%d) produced %d subsets, want %d", tt.n, tt.k, len(got), tt.want)
		}
	}
}

func TestCombinationsOrderAndContent(t *testing.T) {
	got := eval.Combinations([]string{"a", "b", "c", "d"}, 3)
	want := [][]string{
		{"a", "b", "c"},
		{"a", "b", "d"},
		{"a", "c", "d"},
		{"b", "c", "d"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d subsets, want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("subset %d = %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestCombinationsPositional(t *testing.T) {
	// Duplicate values are distinct elements: subsets are positional.
	got := eval.Combinations([]int{7, 7}, 1)
	if len(got) != 2 {
		t.Fatalf("positional subsets of [7 7] k=1: got %d, want 2", len(got))
	}
}
