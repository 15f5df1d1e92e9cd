package battle

import (
	"sync/atomic"
	"testing"
)

func TestPartitionCoversDisjointBalanced(t *testing.T) {
	for workers := 1; workers <= 9; workers++ {
		for n := 0; n <= 60; n++ {
			parts := Partition(n, workers)
			if len(parts) != workers {
				t.Fatalf("Partition(%d,%d) returned %d ranges", n, workers, len(parts))
			}
			next, lo, hi := 0, n, 0
			for _, r := range parts {
				if r.Start != next {
					t.Fatalf("Partition(%d,%d): range %v starts at %d, want %d", n, workers, r, r.Start, next)
				}
				next = r.End
				lo = min(lo, r.Len())
				hi = max(hi, r.Len())
			}
			if next != n {
				t.Fatalf("Partition(%d,%d) covers [0,%d), want [0,%d)", n, workers, next, n)
			}
			if hi-lo > 1 {
				t.Fatalf("Partition(%d,%d) range lengths differ by %d", n, workers, hi-lo)
			}
		}
	}
}

func TestPartitionExtraGoesFirst(t *testing.T) {
	parts := Partition(10, 4)
	want := []int{3, 3, 2, 2}
	for i, r := range parts {
		if r.Len() != want[i] {
			t.Fatalf("range %d len %d, want %d", i, r.Len(), want[i])
		}
	}
}

func TestPartitionDegenerateInputs(t *testing.T) {
	if got := Partition(5, 0); len(got) != 1 || got[0] != (Range{0, 5}) {
		t.Fatalf("Partition(5,0) = %v", got)
	}
	for _, r := range Partition(-3, 2) {
		if r.Len() != 0 {
			t.Fatalf("Partition(-3,2) produced non-empty %v", r)
		}
	}
}

func TestExecutorForEachVisitsEveryIndexOnce(t *testing.T) {
	ex := NewExecutor(4)
	defer ex.Close()

	counts := make([]atomic.Int32, 1001)
	for round := 0; round < 3; round++ {
		ex.ForEach(len(counts), func(i int) { counts[i].Add(1) })
	}
	for i := range counts {
		if got := counts[i].Load(); got != 3 {
			t.Fatalf("index %d visited %d times, want 3", i, got)
		}
	}
}

func TestExecutorRangesArePartitions(t *testing.T) {
	ex := NewExecutor(3)
	defer ex.Close()

	seen := make([]Range, ex.Workers())
	ex.ForEachRange(7, func(part int, r Range) { seen[part] = r })
	want := Partition(7, 3)
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("part %d got %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestExecutorEmptyBatchAndDoubleClose(t *testing.T) {
	ex := NewExecutor(0)
	if ex.Workers() < 1 {
		t.Fatalf("Workers = %d, want >= 1", ex.Workers())
	}
	called := false
	ex.ForEach(0, func(int) { called = true })
	if called {
		t.Fatal("fn called for empty batch")
	}
	ex.Close()
	ex.Close()
}
