package planner

import (
	"container/heap"
	"testing"
)

func TestFrontierOrder(t *testing.T) {
	q := &frontier{}
	in := []*node{
		{f: 5, g: 1, seq: 1},
		{f: 3, g: 2, seq: 2},
		{f: 3, g: 1, seq: 3},
		{f: 3, g: 1, seq: 0},
		{f: 1, g: 9, seq: 4},
	}
	for _, n := range in {
		heap.Push(q, n)
	}
	want := []uint64{4, 0, 3, 2, 1}
	for i, seq := range want {
		got := heap.Pop(q).(*node)
		if got.seq != seq {
			t.Fatalf("pop %d: expected seq %d got %d", i, seq, got.seq)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("frontier not empty")
	}
}

func TestNodeHistory(t *testing.T) {
	root := &node{}
	a := &node{parent: root, action: Action{Crop: "A", Start: 0, End: 2}}
	b := &node{parent: a, action: Action{Crop: "B", Start: 2, End: 3}}

	h := b.history()
	if len(h) != 2 || h[0].Crop != "A" || h[1].Crop != "B" {
		t.Fatalf("unexpected history %+v", h)
	}
	if len(root.history()) != 0 {
		t.Fatalf("root has no history")
	}
}
