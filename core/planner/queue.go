package planner

// node is one frontier entry. The action history is not copied per node;
// parent pointers are followed once, when a goal is reached.
type node struct {
	f      float64 // g + heuristic
	g      float64 // accumulated cost
	seq    uint64  // insertion order, tie-break only
	state  State
	parent *node
	action Action // action that produced this node; zero for the root
}

// before orders nodes by (f, g, seq) ascending.
func (n *node) before(o *node) bool {
	if n.f != o.f {
		return n.f < o.f
	}
	if n.g != o.g {
		return n.g < o.g
	}
	return n.seq < o.seq
}

// history reconstructs the actions from the root to n.
func (n *node) history() []Action {
	depth := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		depth++
	}
	out := make([]Action, depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		depth--
		out[depth] = cur.action
	}
	return out
}

// frontier is a min-heap of nodes implementing heap.Interface.
type frontier []*node

func (q frontier) Len() int           { return len(q) }
func (q frontier) Less(i, j int) bool { return q[i].before(q[j]) }
func (q frontier) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(*node)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
